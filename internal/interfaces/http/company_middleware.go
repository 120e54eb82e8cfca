package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// companyGetter lo implementa repository.CompanyRepository.
type companyGetter interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// RequireActiveCompany corta las peticiones de empresas suspendidas. Va DESPUÉS de AuthMiddleware.
//
//   - 401 si el token no trae company_id.
//   - 403 si la empresa no existe o no está activa.
//   - 503 si no se pudo consultar la base.
func RequireActiveCompany(companies companyGetter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		company, err := companies.GetByID(c.UserContext(), companyID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if company == nil || company.Status != "active" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "COMPANY_INACTIVE",
				Message: "la empresa no está activa",
			})
		}
		return c.Next()
	}
}
