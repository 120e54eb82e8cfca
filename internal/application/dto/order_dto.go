package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. Las cuotas se generan desde las condiciones del proveedor.
type CreateOrderRequest struct {
	OrderNumber string          `json:"order_number" validate:"required,max=50"`
	ProviderID  string          `json:"provider_id" validate:"required"`
	OrderDate   Date            `json:"order_date" validate:"required"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency" validate:"oneof=CLP USD"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

// UpdateOrderRequest entrada para re-guardar un pedido. Las cuotas se regeneran.
type UpdateOrderRequest struct {
	OrderNumber *string          `json:"order_number"`
	ProviderID  *string          `json:"provider_id"`
	OrderDate   *Date            `json:"order_date"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Currency    *string          `json:"currency"`
	Notes       *string          `json:"notes"`
}

// ChangeStatusRequest cambio de etapa del pedido.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderListRequest filtros de listado (query string).
type OrderListRequest struct {
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// InstallmentResponse cuota de un pedido.
type InstallmentResponse struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// OrderResponse salida de un pedido, con su próximo vencimiento y criticidad calculados al leer.
type OrderResponse struct {
	ID           string                `json:"id"`
	CompanyID    string                `json:"company_id"`
	OrderNumber  string                `json:"order_number"`
	ProviderID   string                `json:"provider_id"`
	ProviderName string                `json:"provider_name"`
	OrderDate    time.Time             `json:"order_date"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	Currency     string                `json:"currency"`
	Status       string                `json:"status"`
	Installments []InstallmentResponse `json:"installments"`
	Notes        string                `json:"notes"`
	NextDueDate  *time.Time            `json:"next_due_date"`
	Criticality  string                `json:"criticality"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PaymentImportError línea del CSV que no se pudo aplicar.
type PaymentImportError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// PaymentImportResponse resultado de la importación masiva de pagos.
type PaymentImportResponse struct {
	Updated int                  `json:"updated"`
	Errors  []PaymentImportError `json:"errors"`
}
