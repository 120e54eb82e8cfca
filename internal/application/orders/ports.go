package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// StatementGenerator genera el estado de cuenta del pedido (PDF).
type StatementGenerator interface {
	GenerateOrderStatement(ctx context.Context, data StatementData) ([]byte, error)
}

// StatementData datos que necesita el generador del estado de cuenta.
type StatementData struct {
	Company     *entity.Company
	Order       *entity.Order
	Expenses    []*entity.OrderExpense
	NextDueDate *time.Time
	Criticality string
	GeneratedAt time.Time
	Pending     decimal.Decimal
}
