package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// ListActiveIDs devuelve los IDs de empresas activas (usado por el barrido de vencimientos).
	ListActiveIDs(ctx context.Context) ([]string, error)
}
