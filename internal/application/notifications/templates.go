package notifications

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

const (
	placeholderText   = "N/A"
	placeholderAmount = "0.00"
	dateLayout        = "02-01-2006"
)

// Payload datos del evento. Todos los campos son opcionales.
type Payload struct {
	OrderID      string
	OrderNumber  string
	ProviderName string
	Amount       *decimal.Decimal
	Currency     string
	DueDate      *time.Time
	Status       string
	DocumentType string
	ExpenseType  string
}

// OrderPayload arma el payload base a partir de un pedido.
func OrderPayload(o *entity.Order) Payload {
	return Payload{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		ProviderName: o.ProviderName,
		Currency:     o.Currency,
		Status:       o.Status,
	}
}

// InstallmentPayload payload de una cuota del pedido (barrido de vencimientos).
func InstallmentPayload(o *entity.Order, in entity.Installment) Payload {
	p := OrderPayload(o)
	amount := in.Amount
	due := in.DueDate
	p.Amount = &amount
	p.DueDate = &due
	return p
}

func (p Payload) text(v string) string {
	if v == "" {
		return placeholderText
	}
	return v
}

func (p Payload) amount() string {
	if p.Amount == nil {
		return placeholderAmount
	}
	return p.Amount.StringFixed(2)
}

func (p Payload) dueDate() string {
	if p.DueDate == nil || p.DueDate.IsZero() {
		return placeholderText
	}
	return p.DueDate.UTC().Format(dateLayout)
}

// RenderTemplate asunto y cuerpo en texto plano para el evento.
func RenderTemplate(event entity.EventType, p Payload) (subject, body string, err error) {
	number := p.text(p.OrderNumber)
	provider := p.text(p.ProviderName)
	currency := p.text(p.Currency)

	switch event {
	case entity.EventInstallmentDueSoon:
		subject = fmt.Sprintf("Aviso de Vencimiento: Pedido #%s", number)
		body = fmt.Sprintf("La cuota de %s %s para %s está próxima a vencer el %s.",
			p.amount(), currency, provider, p.dueDate())
	case entity.EventInstallmentOverdue:
		subject = fmt.Sprintf("Alerta de Vencimiento: Pedido #%s", number)
		body = fmt.Sprintf("La cuota de %s %s para %s con vencimiento el %s ha vencido. Por favor, regularice el pago.",
			p.amount(), currency, provider, p.dueDate())
	case entity.EventOrderStatusChanged:
		subject = fmt.Sprintf("Actualización de Pedido: #%s", number)
		body = fmt.Sprintf("El estado del pedido #%s de %s ha cambiado a: %s.",
			number, provider, p.text(p.Status))
	case entity.EventNewDocument:
		subject = fmt.Sprintf("Nuevo Documento en Pedido #%s", number)
		body = fmt.Sprintf("Se ha agregado un nuevo documento (%s) al pedido #%s de %s.",
			p.text(p.DocumentType), number, provider)
	case entity.EventNewExpense:
		subject = fmt.Sprintf("Nuevo Gasto Registrado en Pedido #%s", number)
		body = fmt.Sprintf("Se ha registrado un gasto de %s por %s %s en el pedido #%s.",
			p.text(p.ExpenseType), p.amount(), currency, number)
	default:
		return "", "", domain.ErrInvalidEvent
	}
	return subject, body, nil
}
