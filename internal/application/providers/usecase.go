package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
)

// ProviderUseCase CRUD de proveedores con validación de condiciones de pago.
// Cambiar las condiciones no recalcula las cuotas de pedidos existentes.
type ProviderUseCase struct {
	repo   repository.ProviderRepository
	orders repository.OrderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository, orders repository.OrderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, orders: orders}
}

// Create crea un proveedor.
func (uc *ProviderUseCase) Create(ctx context.Context, companyID string, in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	terms, err := parseTerms(in.PaymentTerms)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &entity.Provider{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		TaxID:        strings.TrimSpace(in.TaxID),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Country:      strings.ToUpper(strings.TrimSpace(in.Country)),
		PaymentTerms: terms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProviderResponse(p), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *ProviderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProviderNotFound
	}
	return ToProviderResponse(p), nil
}

// List lista proveedores por empresa con paginación.
func (uc *ProviderUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProviderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProviderResponse(p))
	}
	return &dto.ProviderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza los campos enviados.
func (uc *ProviderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProviderNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.TaxID != nil {
		p.TaxID = strings.TrimSpace(*in.TaxID)
	}
	if in.Email != nil {
		p.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Country != nil {
		p.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	if in.PaymentTerms != nil {
		terms, err := parseTerms(*in.PaymentTerms)
		if err != nil {
			return nil, err
		}
		p.PaymentTerms = terms
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProviderResponse(p), nil
}

// Delete elimina un proveedor sin pedidos asociados.
func (uc *ProviderUseCase) Delete(ctx context.Context, companyID, id string) error {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProviderNotFound
	}
	linked, err := uc.orders.List(ctx, companyID, entity.OrderFilter{ProviderID: id, Limit: 1})
	if err != nil {
		return err
	}
	if len(linked) > 0 {
		return fmt.Errorf("%w: el proveedor tiene pedidos asociados", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func parseTerms(in dto.PaymentTermsInput) (entity.PaymentTerms, error) {
	if strings.TrimSpace(in.Type) == "" {
		return entity.PaymentTerms{}, fmt.Errorf("%w: tipo requerido", domain.ErrInvalidPaymentTerms)
	}
	return schedule.ParsePaymentTerms(in.Type, in.Days, in.DownPaymentPercentage)
}

// ToProviderResponse DTO de salida.
func ToProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		TaxID:     p.TaxID,
		Email:     p.Email,
		Phone:     p.Phone,
		Country:   p.Country,
		PaymentTerms: dto.PaymentTermsResponse{
			Type:                  p.PaymentTerms.Type,
			Days:                  p.PaymentTerms.Days,
			DownPaymentPercentage: p.PaymentTerms.DownPaymentPercentage,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
