package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de condición de pago de un proveedor.
const (
	PaymentTypeCash   = "contado"
	PaymentTypeCredit = "credito"
)

// PaymentTerms condición de pago del proveedor (unión etiquetada por Type).
// contado: se paga en la fecha de emisión.
// credito: se paga a Days días; opcionalmente con un pie (DownPaymentPercentage) pagado al emitir.
type PaymentTerms struct {
	Type                  string
	Days                  int
	DownPaymentPercentage *decimal.Decimal // nil = sin pie; si existe, en (0,100)
}

// HasDownPayment indica si el crédito se divide en pie + saldo.
func (t PaymentTerms) HasDownPayment() bool {
	return t.Type == PaymentTypeCredit && t.DownPaymentPercentage != nil
}

// Provider representa un proveedor de la empresa (órdenes de compra).
type Provider struct {
	ID           string
	CompanyID    string
	Name         string
	TaxID        string // RUT / NIT / identificador fiscal
	Email        string
	Phone        string
	Country      string // código ISO-3166 alfa-2
	PaymentTerms PaymentTerms
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
