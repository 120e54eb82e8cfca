package orders_test

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

type memOrders struct {
	items     map[string]*entity.Order
	updates   int
	updateErr error
}

func newMemOrders() *memOrders {
	return &memOrders{items: map[string]*entity.Order{}}
}

func clone(o *entity.Order) *entity.Order {
	c := *o
	c.Installments = append([]entity.Installment(nil), o.Installments...)
	return &c
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.items[o.ID] = clone(o)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, companyID, id string) (*entity.Order, error) {
	o := m.items[id]
	if o == nil || o.CompanyID != companyID {
		return nil, nil
	}
	return clone(o), nil
}

func (m *memOrders) GetByNumber(_ context.Context, companyID, number string) (*entity.Order, error) {
	for _, o := range m.items {
		if o.CompanyID == companyID && o.OrderNumber == number {
			return clone(o), nil
		}
	}
	return nil, nil
}

func (m *memOrders) List(_ context.Context, companyID string, f entity.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range m.items {
		if o.CompanyID != companyID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.NotStatus != "" && o.Status == f.NotStatus {
			continue
		}
		if f.From != nil && o.OrderDate.Before(*f.From) {
			continue
		}
		if f.To != nil && o.OrderDate.After(*f.To) {
			continue
		}
		out = append(out, clone(o))
	}
	return out, nil
}

func (m *memOrders) Update(_ context.Context, o *entity.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.items[o.ID]; !ok {
		return errors.New("no existe")
	}
	m.updates++
	m.items[o.ID] = clone(o)
	return nil
}

func (m *memOrders) Delete(_ context.Context, _ string, id string) error {
	delete(m.items, id)
	return nil
}

type memProviders struct {
	items map[string]*entity.Provider
}

func (m *memProviders) Create(_ context.Context, p *entity.Provider) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProviders) GetByID(_ context.Context, companyID, id string) (*entity.Provider, error) {
	p := m.items[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProviders) ListByCompany(context.Context, string, int, int) ([]*entity.Provider, error) {
	return nil, nil
}

func (m *memProviders) Update(_ context.Context, p *entity.Provider) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProviders) Delete(_ context.Context, _ string, id string) error {
	delete(m.items, id)
	return nil
}

type dispatched struct {
	companyID string
	event     entity.EventType
	payload   notifications.Payload
}

type fakeNotifier struct {
	calls []dispatched
}

func (f *fakeNotifier) Dispatch(_ context.Context, companyID string, event entity.EventType, p notifications.Payload) (*notifications.DispatchResult, error) {
	f.calls = append(f.calls, dispatched{companyID, event, p})
	return &notifications.DispatchResult{Event: event}, nil
}

type fakeGenerator struct {
	got orders.StatementData
}

func (f *fakeGenerator) GenerateOrderStatement(_ context.Context, data orders.StatementData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-1.3"), nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
