package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas admitidas.
const (
	CurrencyCLP = "CLP"
	CurrencyUSD = "USD"
)

// Etapas del pedido, en orden de avance.
const (
	OrderStatusManaged    = "Gestionado"
	OrderStatusProduction = "En Producción"
	OrderStatusTransit    = "En Tránsito"
	OrderStatusCustoms    = "En Aduana"
	OrderStatusReceived   = "Recibido"
	OrderStatusPaid       = "Pagado"
)

// OrderStatuses secuencia completa de etapas (Gestionado → Pagado).
var OrderStatuses = []string{
	OrderStatusManaged,
	OrderStatusProduction,
	OrderStatusTransit,
	OrderStatusCustoms,
	OrderStatusReceived,
	OrderStatusPaid,
}

// IsValidOrderStatus verifica que el estado pertenezca a la secuencia.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidCurrency verifica la moneda.
func IsValidCurrency(currency string) bool {
	return currency == CurrencyCLP || currency == CurrencyUSD
}

// Estados de una cuota.
const (
	InstallmentPending = "pendiente"
	InstallmentPaid    = "pagado"
)

// Installment cuota de pago de un pedido.
type Installment struct {
	Number  int
	DueDate time.Time // medianoche UTC
	Amount  decimal.Decimal
	Status  string // pendiente | pagado
	PaidAt  *time.Time
}

// IsPending indica si la cuota sigue pendiente.
func (i Installment) IsPending() bool {
	return i.Status == InstallmentPending
}

// Order representa una orden de compra a un proveedor.
type Order struct {
	ID           string
	CompanyID    string
	OrderNumber  string
	ProviderID   string
	ProviderName string // copiado al crear; no se sincroniza con el proveedor
	OrderDate    time.Time
	TotalAmount  decimal.Decimal
	Currency     string
	Status       string
	Installments []Installment
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderFilter filtros para listar pedidos. Campos vacíos/nil no filtran.
type OrderFilter struct {
	ProviderID string
	Status     string
	NotStatus  string
	From       *time.Time // OrderDate >= From
	To         *time.Time // OrderDate <= To
	Limit      int
	Offset     int
}
