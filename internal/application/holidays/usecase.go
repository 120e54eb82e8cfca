package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Client API pública de feriados.
type Client interface {
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]entity.Holiday, error)
}

// Cache caché clave/valor con expiración. Get devuelve ok=false si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

var countryRe = regexp.MustCompile(`^[A-Z]{2}$`)

// UseCase consulta de feriados con caché por (año, país).
type UseCase struct {
	client         Client
	cache          Cache
	ttl            time.Duration
	defaultCountry string
	log            *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(client Client, cache Cache, ttl time.Duration, defaultCountry string, log *logger.Logger) *UseCase {
	return &UseCase{client: client, cache: cache, ttl: ttl, defaultCountry: defaultCountry, log: log}
}

// List feriados del año para el país (o el país por defecto).
// Una falla de la caché no impide responder desde la API.
func (uc *UseCase) List(ctx context.Context, year int, country string) ([]dto.HolidayResponse, error) {
	if year < 1900 || year > 2200 {
		return nil, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, year)
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		country = uc.defaultCountry
	}
	if !countryRe.MatchString(country) {
		return nil, fmt.Errorf("%w: código de país %q", domain.ErrInvalidInput, country)
	}

	key := fmt.Sprintf("holidays:%d:%s", year, country)
	if uc.cache != nil {
		raw, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("caché de feriados no disponible")
		} else if ok {
			var cached []dto.HolidayResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	list, err := uc.client.PublicHolidays(ctx, year, country)
	if err != nil {
		return nil, fmt.Errorf("feriados %d/%s: %w", year, country, err)
	}
	out := make([]dto.HolidayResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.HolidayResponse{
			Date:        h.Date.Format("2006-01-02"),
			Name:        h.Name,
			CountryCode: h.CountryCode,
		})
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
				uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar feriados en caché")
			}
		}
	}
	return out, nil
}
