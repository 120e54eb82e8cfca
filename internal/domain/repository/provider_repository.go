package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ProviderRepository define el puerto de persistencia para Provider.
// GetByID devuelve (nil, nil) si no existe o pertenece a otra empresa.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Provider, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, companyID, id string) error
}
