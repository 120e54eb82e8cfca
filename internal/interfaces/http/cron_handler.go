package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// CronHandler disparador externo del barrido de vencimientos.
type CronHandler struct {
	sweeper *sweep.Sweeper
	log     *logger.Logger
	now     func() time.Time
}

// NewCronHandler construye el handler.
func NewCronHandler(sweeper *sweep.Sweeper, log *logger.Logger) *CronHandler {
	return &CronHandler{sweeper: sweeper, log: log, now: time.Now}
}

// Expirations godoc
// @Summary      Barrido de vencimientos
// @Description  Recorre todas las empresas y notifica cuotas vencidas o próximas a vencer.
// @Tags         cron
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <CRON_SECRET>"
// @Success      200  {object}  dto.CronResponse
// @Failure      401  {object}  dto.CronResponse
// @Failure      500  {object}  dto.CronResponse
// @Router       /api/cron/expirations [get]
func (h *CronHandler) Expirations(c *fiber.Ctx) error {
	results, err := h.sweeper.RunAll(c.UserContext(), h.now().UTC())
	if results == nil {
		results = []dto.SweepResult{}
	}
	if err != nil {
		h.log.Error().Err(err).Msg("barrido de vencimientos falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CronResponse{
			OK:      false,
			Message: err.Error(),
			Results: results,
		})
	}
	return c.JSON(dto.CronResponse{
		OK:      true,
		Message: sweep.Summary(results),
		Results: results,
	})
}
