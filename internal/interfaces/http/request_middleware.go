package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// HTTPMetrics lo implementa metrics.Registry.
type HTTPMetrics interface {
	HTTPRequest(method, route string, status int, d time.Duration)
}

// RequestLogger registra cada petición (método, ruta, status, latencia) y
// alimenta las métricas HTTP. Los 5xx se registran con el error del handler.
func RequestLogger(log *logger.Logger, m HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		if m != nil {
			m.HTTPRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(err)
			} else if chainErr != nil {
				ev = ev.Err(chainErr)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http request")
		return nil
	}
}
