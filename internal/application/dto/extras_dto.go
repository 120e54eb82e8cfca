package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentResponse metadatos de un documento del pedido.
type DocumentResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// DownloadURLResponse URL firmada de descarga.
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateExpenseRequest gasto asociado a un pedido.
type CreateExpenseRequest struct {
	ExpenseType string          `json:"expense_type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        Date            `json:"date"`
	Note        string          `json:"note"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ExpenseType string          `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HolidayResponse feriado público.
type HolidayResponse struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}
