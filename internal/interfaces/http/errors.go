package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
)

// LocalError guarda el error interno para que RequestLogger lo registre.
const LocalError = "request_error"

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los NotFound específicos antes del genérico.
var errorMappings = []errorMapping{
	{domain.ErrProviderNotFound, fiber.StatusNotFound, "PROVIDER_NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrInstallmentNotFound, fiber.StatusNotFound, "INSTALLMENT_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidPaymentTerms, fiber.StatusBadRequest, "INVALID_PAYMENT_TERMS"},
	{domain.ErrInvalidEvent, fiber.StatusBadRequest, "INVALID_EVENT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrSweepInProgress, fiber.StatusConflict, "SWEEP_IN_PROGRESS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrChannelDisabled, fiber.StatusServiceUnavailable, "SERVICE_DISABLED"},
}

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe dto.ErrorResponse con el status que corresponde al error.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

// parseError distingue un cuerpo mal formado de uno que decodifica pero viola una regla.
func parseError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return respondError(c, err)
	}
	return invalidBody(c)
}

func missingCompany(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
}
