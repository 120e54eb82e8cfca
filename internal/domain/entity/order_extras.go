package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDocument metadatos de un archivo adjunto a un pedido (el contenido vive en object storage).
type OrderDocument struct {
	ID           string
	OrderID      string
	CompanyID    string
	DocumentType string // factura, packing list, BL, etc.
	FileName     string
	ObjectKey    string
	ContentType  string
	Size         int64
	UploadedAt   time.Time
}

// OrderExpense gasto asociado a un pedido (flete, aduana, seguro...).
type OrderExpense struct {
	ID          string
	OrderID     string
	CompanyID   string
	ExpenseType string
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	Note        string
	CreatedAt   time.Time
}

// Holiday feriado público.
type Holiday struct {
	Date        time.Time
	Name        string
	CountryCode string
}
