package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTermsInput condición de pago tal como llega del cliente.
// Days y DownPaymentPercentage aceptan número o texto numérico.
type PaymentTermsInput struct {
	Type                  string `json:"type"`
	Days                  any    `json:"days"`
	DownPaymentPercentage any    `json:"downPaymentPercentage"`
}

// PaymentTermsResponse condición de pago normalizada.
type PaymentTermsResponse struct {
	Type                  string           `json:"type"`
	Days                  int              `json:"days,omitempty"`
	DownPaymentPercentage *decimal.Decimal `json:"downPaymentPercentage,omitempty"`
}

// CreateProviderRequest entrada para crear un proveedor.
type CreateProviderRequest struct {
	Name         string            `json:"name" validate:"required,min=1,max=200"`
	TaxID        string            `json:"tax_id"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Phone        string            `json:"phone"`
	Country      string            `json:"country"`
	PaymentTerms PaymentTermsInput `json:"payment_terms"`
}

// UpdateProviderRequest entrada para actualizar un proveedor (campos opcionales).
type UpdateProviderRequest struct {
	Name         *string            `json:"name"`
	TaxID        *string            `json:"tax_id"`
	Email        *string            `json:"email"`
	Phone        *string            `json:"phone"`
	Country      *string            `json:"country"`
	PaymentTerms *PaymentTermsInput `json:"payment_terms"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID           string               `json:"id"`
	CompanyID    string               `json:"company_id"`
	Name         string               `json:"name"`
	TaxID        string               `json:"tax_id"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Country      string               `json:"country"`
	PaymentTerms PaymentTermsResponse `json:"payment_terms"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ProviderListResponse lista paginada de proveedores.
type ProviderListResponse struct {
	Items []ProviderResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
