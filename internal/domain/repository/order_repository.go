package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus cuotas.
// Las cuotas se guardan junto al pedido (documento completo): Create/Update las reescriben.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, companyID, orderNumber string) (*entity.Order, error)
	List(ctx context.Context, companyID string, filter entity.OrderFilter) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, companyID, id string) error
}

// OrderDocumentRepository metadatos de documentos adjuntos.
type OrderDocumentRepository interface {
	Create(ctx context.Context, doc *entity.OrderDocument) error
	GetByID(ctx context.Context, companyID, id string) (*entity.OrderDocument, error)
	ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.OrderDocument, error)
}

// OrderExpenseRepository gastos por pedido.
type OrderExpenseRepository interface {
	Create(ctx context.Context, expense *entity.OrderExpense) error
	ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.OrderExpense, error)
}
