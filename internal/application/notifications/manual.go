package notifications

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// PayloadFromRequest convierte el payload de la API. Un monto no numérico es un error de entrada.
func PayloadFromRequest(in dto.PayloadRequest) (Payload, error) {
	p := Payload{
		OrderID:      in.OrderID,
		OrderNumber:  in.OrderNumber,
		ProviderName: in.ProviderName,
		Currency:     in.Currency,
		DueDate:      in.DueDate.Ptr(),
		Status:       in.Status,
		DocumentType: in.DocumentType,
		ExpenseType:  in.ExpenseType,
	}
	if in.Amount != "" {
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: monto %q", domain.ErrInvalidInput, in.Amount)
		}
		p.Amount = &amount
	}
	return p, nil
}

// DispatchManual despacha un evento recibido por la API.
func (d *Dispatcher) DispatchManual(ctx context.Context, companyID string, in dto.DispatchRequest) (*dto.DispatchResponse, error) {
	event := entity.EventType(in.Event)
	if !event.IsValid() {
		return nil, domain.ErrInvalidEvent
	}
	p, err := PayloadFromRequest(in.Payload)
	if err != nil {
		return nil, err
	}
	res, err := d.Dispatch(ctx, companyID, event, p)
	if err != nil {
		return nil, err
	}
	return ToDispatchResponse(res), nil
}

// ToDispatchResponse DTO del resultado.
func ToDispatchResponse(r *DispatchResult) *dto.DispatchResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return &dto.DispatchResponse{
		Event:      string(r.Event),
		Contacts:   r.Contacts,
		EmailsSent: r.EmailsSent,
		InAppSaved: r.InAppSaved,
		PushSent:   r.PushSent,
		Errors:     errs,
	}
}
