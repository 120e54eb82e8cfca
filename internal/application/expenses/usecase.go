package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// UseCase gastos asociados a pedidos (flete, aduana, seguro).
type UseCase struct {
	orders   repository.OrderRepository
	expenses repository.OrderExpenseRepository
	notifier notifications.Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.OrderRepository, expenses repository.OrderExpenseRepository, notifier notifications.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{orders: orders, expenses: expenses, notifier: notifier, log: log}
}

// Create registra el gasto y notifica "Gasto nuevo". Sin moneda se usa la del pedido.
func (uc *UseCase) Create(ctx context.Context, companyID, orderID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	expenseType := strings.TrimSpace(in.ExpenseType)
	if expenseType == "" {
		return nil, fmt.Errorf("%w: tipo de gasto requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	order, err := uc.orders.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = order.Currency
	}
	if !entity.IsValidCurrency(currency) {
		return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, in.Currency)
	}
	now := time.Now().UTC()
	date := schedule.DateOnly(now)
	if !in.Date.IsZero() {
		date = schedule.DateOnly(in.Date.Time)
	}
	e := &entity.OrderExpense{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		CompanyID:   companyID,
		ExpenseType: expenseType,
		Amount:      in.Amount,
		Currency:    currency,
		Date:        date,
		Note:        in.Note,
		CreatedAt:   now,
	}
	if err := uc.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		p := notifications.OrderPayload(order)
		amount := e.Amount
		p.Amount = &amount
		p.Currency = e.Currency
		p.ExpenseType = e.ExpenseType
		if _, err := uc.notifier.Dispatch(ctx, companyID, entity.EventNewExpense, p); err != nil {
			uc.log.Error().Err(err).Str("order", order.OrderNumber).Msg("no se pudo notificar el gasto nuevo")
		}
	}
	return toExpenseResponse(e), nil
}

// List gastos de un pedido.
func (uc *UseCase) List(ctx context.Context, companyID, orderID string) ([]dto.ExpenseResponse, error) {
	list, err := uc.expenses.ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.OrderExpense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		ExpenseType: e.ExpenseType,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Date:        e.Date,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}
