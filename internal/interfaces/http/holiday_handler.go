package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/holidays"
)

// HolidayHandler feriados públicos para el calendario de vencimientos.
type HolidayHandler struct {
	uc *holidays.UseCase
}

// NewHolidayHandler construye el handler.
func NewHolidayHandler(uc *holidays.UseCase) *HolidayHandler {
	return &HolidayHandler{uc: uc}
}

// List godoc
// @Summary      Feriados públicos
// @Tags         holidays
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     false  "Año (default el actual)"
// @Param        country  query  string  false  "Código ISO de país (default el configurado)"
// @Success      200  {array}  dto.HolidayResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/holidays [get]
func (h *HolidayHandler) List(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().UTC().Year())
	out, err := h.uc.List(c.UserContext(), year, c.Query("country"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
