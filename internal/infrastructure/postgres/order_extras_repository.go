package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var (
	_ repository.OrderDocumentRepository = (*OrderDocumentRepo)(nil)
	_ repository.OrderExpenseRepository  = (*OrderExpenseRepo)(nil)
)

// OrderDocumentRepo metadatos de documentos; el contenido vive en object storage.
type OrderDocumentRepo struct {
	q Querier
}

// NewOrderDocumentRepository construye el adaptador.
func NewOrderDocumentRepository(q Querier) *OrderDocumentRepo {
	return &OrderDocumentRepo{q: q}
}

const documentColumns = `id, order_id, company_id, document_type, file_name, object_key, content_type, size, uploaded_at`

// Create persiste los metadatos del documento.
func (r *OrderDocumentRepo) Create(ctx context.Context, d *entity.OrderDocument) error {
	query := `INSERT INTO order_documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OrderID, d.CompanyID, d.DocumentType, d.FileName, d.ObjectKey, d.ContentType, d.Size, d.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento de la empresa.
func (r *OrderDocumentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.OrderDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM order_documents WHERE company_id = $1 AND id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order document: %w", err)
	}
	return d, nil
}

// ListByOrder documentos del pedido, más recientes primero.
func (r *OrderDocumentRepo) ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.OrderDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM order_documents
		WHERE company_id = $1 AND order_id = $2 ORDER BY uploaded_at DESC`
	rows, err := r.q.Query(ctx, query, companyID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDocument(row pgxScanner) (*entity.OrderDocument, error) {
	var d entity.OrderDocument
	err := row.Scan(&d.ID, &d.OrderID, &d.CompanyID, &d.DocumentType, &d.FileName, &d.ObjectKey, &d.ContentType, &d.Size, &d.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// OrderExpenseRepo gastos por pedido.
type OrderExpenseRepo struct {
	q Querier
}

// NewOrderExpenseRepository construye el adaptador.
func NewOrderExpenseRepository(q Querier) *OrderExpenseRepo {
	return &OrderExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *OrderExpenseRepo) Create(ctx context.Context, e *entity.OrderExpense) error {
	query := `
		INSERT INTO order_expenses (id, order_id, company_id, expense_type, amount, currency, date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrderID, e.CompanyID, e.ExpenseType, e.Amount, e.Currency, e.Date, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order expense: %w", err)
	}
	return nil
}

// ListByOrder gastos del pedido por fecha.
func (r *OrderExpenseRepo) ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.OrderExpense, error) {
	query := `
		SELECT id, order_id, company_id, expense_type, amount, currency, date, note, created_at
		FROM order_expenses WHERE company_id = $1 AND order_id = $2 ORDER BY date, created_at`
	rows, err := r.q.Query(ctx, query, companyID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderExpense
	for rows.Next() {
		var e entity.OrderExpense
		if err := rows.Scan(&e.ID, &e.OrderID, &e.CompanyID, &e.ExpenseType, &e.Amount, &e.Currency, &e.Date, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order expense: %w", err)
		}
		e.Date = e.Date.UTC()
		list = append(list, &e)
	}
	return list, rows.Err()
}
