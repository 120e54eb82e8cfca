package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// OrderUseCase ciclo de vida de pedidos y sus cuotas.
// Las cuotas se generan con las condiciones del proveedor vigentes al crear o re-guardar;
// la lectura del proveedor y el guardado del pedido no son atómicos.
type OrderUseCase struct {
	orders    repository.OrderRepository
	providers repository.ProviderRepository
	notifier  notifications.Notifier
	log       *logger.Logger
	now       func() time.Time
}

// Option ajustes opcionales.
type Option func(*OrderUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *OrderUseCase) { uc.now = now }
}

// NewOrderUseCase construye el caso de uso. notifier puede ser nil.
func NewOrderUseCase(orders repository.OrderRepository, providers repository.ProviderRepository, notifier notifications.Notifier, log *logger.Logger, opts ...Option) *OrderUseCase {
	uc := &OrderUseCase{orders: orders, providers: providers, notifier: notifier, log: log, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create crea el pedido y genera sus cuotas. Si el proveedor no existe no se persiste nada.
func (uc *OrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: número de pedido requerido", domain.ErrInvalidInput)
	}
	if in.OrderDate.IsZero() {
		return nil, fmt.Errorf("%w: fecha de pedido requerida", domain.ErrInvalidInput)
	}
	if in.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto total no puede ser negativo", domain.ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = entity.CurrencyCLP
	}
	if !entity.IsValidCurrency(currency) {
		return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, in.Currency)
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusManaged
	}
	if !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	existing, err := uc.orders.GetByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe el pedido %s", domain.ErrDuplicate, number)
	}

	provider, err := uc.providers.GetByID(ctx, companyID, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}

	orderDate := schedule.DateOnly(in.OrderDate.Time)
	installments, err := schedule.GenerateInstallments(in.TotalAmount, orderDate, provider.PaymentTerms)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	order := &entity.Order{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		OrderNumber:  number,
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		OrderDate:    orderDate,
		TotalAmount:  in.TotalAmount,
		Currency:     currency,
		Status:       status,
		Installments: installments,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return uc.toResponse(order), nil
}

// Update re-guarda el pedido: regenera las cuotas con las condiciones actuales del proveedor
// y conserva como pagadas las que no cambiaron de fecha ni monto.
func (uc *OrderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.OrderNumber != nil {
		number := strings.TrimSpace(*in.OrderNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: número de pedido requerido", domain.ErrInvalidInput)
		}
		if number != order.OrderNumber {
			other, err := uc.orders.GetByNumber(ctx, companyID, number)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("%w: ya existe el pedido %s", domain.ErrDuplicate, number)
			}
			order.OrderNumber = number
		}
	}
	if in.ProviderID != nil {
		order.ProviderID = *in.ProviderID
	}
	if in.OrderDate != nil && !in.OrderDate.IsZero() {
		order.OrderDate = schedule.DateOnly(in.OrderDate.Time)
	}
	if in.TotalAmount != nil {
		if in.TotalAmount.IsNegative() {
			return nil, fmt.Errorf("%w: el monto total no puede ser negativo", domain.ErrInvalidInput)
		}
		order.TotalAmount = *in.TotalAmount
	}
	if in.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if !entity.IsValidCurrency(currency) {
			return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, *in.Currency)
		}
		order.Currency = currency
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}

	provider, err := uc.providers.GetByID(ctx, companyID, order.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	regenerated, err := schedule.GenerateInstallments(order.TotalAmount, order.OrderDate, provider.PaymentTerms)
	if err != nil {
		return nil, err
	}
	order.ProviderName = provider.Name
	order.Installments = schedule.MergePaidStatus(order.Installments, regenerated)
	order.UpdatedAt = uc.now().UTC()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return uc.toResponse(order), nil
}

// GetByID obtiene un pedido con su criticidad calculada.
func (uc *OrderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order), nil
}

// List lista pedidos filtrando por estado y rango de fechas del pedido.
func (uc *OrderUseCase) List(ctx context.Context, companyID string, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	filter := entity.OrderFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		if !entity.IsValidOrderStatus(in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
		filter.Status = in.Status
	}
	if in.From != "" {
		from, err := dto.ParseDate(in.From)
		if err != nil {
			return nil, err
		}
		from = schedule.DateOnly(from)
		filter.From = &from
	}
	if in.To != "" {
		to, err := dto.ParseDate(in.To)
		if err != nil {
			return nil, err
		}
		to = schedule.DateOnly(to)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	list, err := uc.orders.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina el pedido junto con sus cuotas.
func (uc *OrderUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.orders.Delete(ctx, companyID, id)
}

// ChangeStatus mueve el pedido de etapa y notifica el cambio.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, companyID, id string, in dto.ChangeStatusRequest) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == in.Status {
		return uc.toResponse(order), nil
	}
	previous := order.Status
	order.Status = in.Status
	order.UpdatedAt = uc.now().UTC()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderNumber).Str("from", previous).Str("to", order.Status).Msg("cambio de estado")
	uc.notify(ctx, companyID, entity.EventOrderStatusChanged, notifications.OrderPayload(order))
	return uc.toResponse(order), nil
}

// MarkInstallmentPaid marca una cuota como pagada. Marcar una cuota ya pagada no la modifica.
func (uc *OrderUseCase) MarkInstallmentPaid(ctx context.Context, companyID, id string, number int) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range order.Installments {
		if order.Installments[i].Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrInstallmentNotFound
	}
	if order.Installments[idx].IsPending() {
		now := uc.now().UTC()
		order.Installments[idx].Status = entity.InstallmentPaid
		order.Installments[idx].PaidAt = &now
		order.UpdatedAt = now
		if err := uc.orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(order), nil
}

func (uc *OrderUseCase) load(ctx context.Context, companyID, id string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (uc *OrderUseCase) notify(ctx context.Context, companyID string, event entity.EventType, p notifications.Payload) {
	if uc.notifier == nil {
		return
	}
	if _, err := uc.notifier.Dispatch(ctx, companyID, event, p); err != nil {
		uc.log.Error().Err(err).Str("event", string(event)).Str("order", p.OrderNumber).Msg("no se pudo despachar el evento")
	}
}

func (uc *OrderUseCase) toResponse(o *entity.Order) *dto.OrderResponse {
	return ToOrderResponse(o, uc.now())
}

// ToOrderResponse DTO de salida con próximo vencimiento y criticidad respecto de now.
func ToOrderResponse(o *entity.Order, now time.Time) *dto.OrderResponse {
	next, crit := schedule.ClassifyOrder(o, now)
	installments := make([]dto.InstallmentResponse, 0, len(o.Installments))
	for _, in := range o.Installments {
		installments = append(installments, dto.InstallmentResponse{
			Number:  in.Number,
			DueDate: in.DueDate,
			Amount:  in.Amount,
			Status:  in.Status,
			PaidAt:  in.PaidAt,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		CompanyID:    o.CompanyID,
		OrderNumber:  o.OrderNumber,
		ProviderID:   o.ProviderID,
		ProviderName: o.ProviderName,
		OrderDate:    o.OrderDate,
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		Status:       o.Status,
		Installments: installments,
		Notes:        o.Notes,
		NextDueDate:  next,
		Criticality:  string(crit),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// pendingTotal suma de cuotas pendientes.
func pendingTotal(o *entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, in := range o.Installments {
		if in.IsPending() {
			total = total.Add(in.Amount)
		}
	}
	return total
}
