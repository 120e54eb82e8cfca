package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, company_id, order_number, provider_id, provider_name, order_date,
	total_amount, currency, status, installments, notes, created_at, updated_at`

// installmentRow forma de una cuota dentro de la columna JSONB.
type installmentRow struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// El pedido y sus cuotas son una sola fila (cuotas en JSONB).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido con sus cuotas. Número repetido en la empresa -> ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	installments, err := encodeInstallments(o.Installments)
	if err != nil {
		return err
	}
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, o.ProviderID, o.ProviderName, o.OrderDate,
		o.TotalAmount, o.Currency, o.Status, installments, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, query, companyID, id)
}

// GetByNumber obtiene un pedido por su número (único por empresa).
func (r *OrderRepo) GetByNumber(ctx context.Context, companyID, orderNumber string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1 AND order_number = $2`
	return r.getOne(ctx, query, companyID, orderNumber)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List pedidos de la empresa, más recientes primero, aplicando los filtros no vacíos.
func (r *OrderRepo) List(ctx context.Context, companyID string, f entity.OrderFilter) ([]*entity.Order, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProviderID != "" {
		add("provider_id = $%d", f.ProviderID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.NotStatus != "" {
		add("status <> $%d", f.NotStatus)
	}
	if f.From != nil {
		add("order_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("order_date <= $%d", *f.To)
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY order_date DESC, order_number`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reescribe el pedido completo, cuotas incluidas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	installments, err := encodeInstallments(o.Installments)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders SET order_number = $3, provider_id = $4, provider_name = $5, order_date = $6,
			total_amount = $7, currency = $8, status = $9, installments = $10, notes = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		o.CompanyID, o.ID, o.OrderNumber, o.ProviderID, o.ProviderName, o.OrderDate,
		o.TotalAmount, o.Currency, o.Status, installments, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Delete elimina el pedido; documentos y gastos caen en cascada.
func (r *OrderRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgxScanner) (*entity.Order, error) {
	var (
		o   entity.Order
		raw []byte
	)
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.OrderNumber, &o.ProviderID, &o.ProviderName, &o.OrderDate,
		&o.TotalAmount, &o.Currency, &o.Status, &raw, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.OrderDate = o.OrderDate.UTC()
	if o.Installments, err = decodeInstallments(raw); err != nil {
		return nil, fmt.Errorf("pedido %s: %w", o.ID, err)
	}
	return &o, nil
}

func encodeInstallments(in []entity.Installment) (string, error) {
	rows := make([]installmentRow, 0, len(in))
	for _, i := range in {
		rows = append(rows, installmentRow{
			Number:  i.Number,
			DueDate: i.DueDate.UTC(),
			Amount:  i.Amount,
			Status:  i.Status,
			PaidAt:  i.PaidAt,
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode installments: %w", err)
	}
	return string(b), nil
}

func decodeInstallments(raw []byte) ([]entity.Installment, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []installmentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode installments: %w", err)
	}
	out := make([]entity.Installment, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.Installment{
			Number:  r.Number,
			DueDate: r.DueDate.UTC(),
			Amount:  r.Amount,
			Status:  r.Status,
			PaidAt:  r.PaidAt,
		})
	}
	return out, nil
}
