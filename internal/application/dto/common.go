package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseDate convierte una fecha de entrada a la medianoche UTC de su día calendario.
// Acepta YYYY-MM-DD, RFC 3339 o milisegundos Unix. Con RFC 3339 manda el día en la
// zona que trae el texto: "2024-01-31T22:00:00-03:00" es el 31 de enero.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha vacía", domain.ErrInvalidInput)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return calendarDay(t), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return calendarDay(time.UnixMilli(ms).UTC()), nil
	}
	return time.Time{}, fmt.Errorf("%w: fecha %q no reconocida", domain.ErrInvalidInput, s)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date fecha recibida en JSON como texto o como número (milisegundos Unix).
type Date struct {
	time.Time
}

// UnmarshalJSON acepta "2024-01-31", "2024-01-31T10:00:00-03:00" o 1706659200000.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		if raw == "" {
			d.Time = time.Time{}
			return nil
		}
	} else {
		raw = string(b)
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON serializa en RFC 3339 UTC.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// Ptr devuelve nil si la fecha está vacía.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
