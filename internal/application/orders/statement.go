package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
)

// StatementUseCase descarga del estado de cuenta del pedido.
type StatementUseCase struct {
	orders    *OrderUseCase
	companies repository.CompanyRepository
	expenses  repository.OrderExpenseRepository
	generator StatementGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(orders *OrderUseCase, companies repository.CompanyRepository, expenses repository.OrderExpenseRepository, generator StatementGenerator) *StatementUseCase {
	return &StatementUseCase{orders: orders, companies: companies, expenses: expenses, generator: generator}
}

// Download genera el PDF y devuelve (bytes, nombre de archivo).
func (uc *StatementUseCase) Download(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	order, err := uc.orders.load(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	expenses, err := uc.expenses.ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener gastos: %w", err)
	}

	now := uc.orders.now().UTC()
	next, crit := schedule.ClassifyOrder(order, now)
	data := StatementData{
		Company:     company,
		Order:       order,
		Expenses:    expenses,
		NextDueDate: next,
		Criticality: string(crit),
		GeneratedAt: now,
		Pending:     pendingTotal(order),
	}
	pdf, err := uc.generator.GenerateOrderStatement(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("pedido_%s.pdf", sanitizeFileName(order.OrderNumber)), nil
}

func sanitizeFileName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
