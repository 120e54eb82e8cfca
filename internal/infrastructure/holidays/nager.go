// Package holidays cliente de la API pública de feriados Nager.Date.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

var _ holidays.Client = (*Client)(nil)

// Client consulta GET {base}/PublicHolidays/{año}/{país}.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient construye el cliente con timeout de 10s.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type nagerHoliday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// PublicHolidays feriados del año; el nombre es el local (español para CL).
func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]entity.Holiday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	// Nager responde 204 para países sin datos y 404 para códigos desconocidos.
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return []entity.Holiday{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holidays API returned %d", resp.StatusCode)
	}

	var raw []nagerHoliday
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	out := make([]entity.Holiday, 0, len(raw))
	for _, h := range raw {
		date, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("fecha de feriado %q: %w", h.Date, err)
		}
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		out = append(out, entity.Holiday{Date: date, Name: name, CountryCode: h.CountryCode})
	}
	return out, nil
}
