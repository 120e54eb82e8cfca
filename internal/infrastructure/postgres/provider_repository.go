package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

const providerColumns = `id, company_id, name, tax_id, email, phone, country,
	payment_type, payment_days, down_payment_percentage, created_at, updated_at`

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
// Las condiciones de pago se guardan en columnas (tipo, días, % de pie nullable).
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	query := `INSERT INTO providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.TaxID, p.Email, p.Phone, p.Country,
		p.PaymentTerms.Type, p.PaymentTerms.Days, p.PaymentTerms.DownPaymentPercentage,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor de la empresa.
func (r *ProviderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE company_id = $1 AND id = $2`
	p, err := scanProvider(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

// ListByCompany lista proveedores por nombre con paginación.
func (r *ProviderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza datos y condiciones de pago.
func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	query := `
		UPDATE providers SET name = $3, tax_id = $4, email = $5, phone = $6, country = $7,
			payment_type = $8, payment_days = $9, down_payment_percentage = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.Name, p.TaxID, p.Email, p.Phone, p.Country,
		p.PaymentTerms.Type, p.PaymentTerms.Days, p.PaymentTerms.DownPaymentPercentage, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// Delete elimina un proveedor; si aún tiene pedidos la FK lo impide (ErrConflict).
func (r *ProviderRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM providers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete provider: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func scanProvider(row pgxScanner) (*entity.Provider, error) {
	var (
		p    entity.Provider
		down *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.TaxID, &p.Email, &p.Phone, &p.Country,
		&p.PaymentTerms.Type, &p.PaymentTerms.Days, &down,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PaymentTerms.DownPaymentPercentage = down
	return &p, nil
}
