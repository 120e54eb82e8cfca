package notifications_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

type fakeContacts struct {
	items   []*entity.NotificationContact
	listErr error
}

func (f *fakeContacts) Create(_ context.Context, c *entity.NotificationContact) error {
	f.items = append(f.items, c)
	return nil
}

func (f *fakeContacts) GetByID(_ context.Context, companyID, id string) (*entity.NotificationContact, error) {
	for _, c := range f.items {
		if c.ID == id && c.CompanyID == companyID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContacts) ListByCompany(_ context.Context, companyID string) ([]*entity.NotificationContact, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.NotificationContact
	for _, c := range f.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContacts) Update(_ context.Context, c *entity.NotificationContact) error {
	for i, it := range f.items {
		if it.ID == c.ID {
			f.items[i] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeContacts) Delete(_ context.Context, companyID, id string) error {
	for i, it := range f.items {
		if it.ID == id && it.CompanyID == companyID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSubscriptions struct {
	items   []*entity.PushSubscription
	deleted []string
}

func (f *fakeSubscriptions) Upsert(_ context.Context, s *entity.PushSubscription) error {
	for i, it := range f.items {
		if it.Endpoint == s.Endpoint {
			f.items[i] = s
			return nil
		}
	}
	f.items = append(f.items, s)
	return nil
}

func (f *fakeSubscriptions) ListByCompany(_ context.Context, companyID string) ([]*entity.PushSubscription, error) {
	var out []*entity.PushSubscription
	for _, s := range f.items {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptions) DeleteByEndpoint(_ context.Context, endpoint string) error {
	f.deleted = append(f.deleted, endpoint)
	for i, it := range f.items {
		if it.Endpoint == endpoint {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeHistory struct {
	mu      sync.Mutex
	items   []*entity.Notification
	failFor string
}

func (f *fakeHistory) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor != "" && n.Channel == f.failFor {
		return errors.New("store caído")
	}
	f.items = append(f.items, n)
	return nil
}

func (f *fakeHistory) ListRecent(_ context.Context, companyID, userID string, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		n := f.items[i]
		if n.CompanyID == companyID && (userID == "" || n.UserID == userID) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeHistory) MarkRead(_ context.Context, companyID, id string) error {
	for _, n := range f.items {
		if n.ID == id && n.CompanyID == companyID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeHistory) MarkAllRead(_ context.Context, companyID, userID string) (int64, error) {
	var count int64
	for _, n := range f.items {
		if n.CompanyID == companyID && n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeHistory) byChannel(channel string) int {
	count := 0
	for _, n := range f.items {
		if n.Channel == channel {
			count++
		}
	}
	return count
}

type fakeEmail struct {
	sent    []notifications.EmailMessage
	failFor map[string]bool
}

func (f *fakeEmail) Send(_ context.Context, msg notifications.EmailMessage) (string, error) {
	if f.failFor[msg.To] {
		return "", errors.New("resend: 422")
	}
	f.sent = append(f.sent, msg)
	return "msg-id", nil
}

type fakePush struct {
	enabled bool
	sent    []string
	errs    map[string]error
}

func (f *fakePush) Enabled() bool     { return f.enabled }
func (f *fakePush) PublicKey() string { return "BPUB" }

func (f *fakePush) Send(_ context.Context, sub *entity.PushSubscription, _ notifications.PushMessage) error {
	if err := f.errs[sub.Endpoint]; err != nil {
		return err
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

type fakeMetrics struct {
	counts map[string]int
}

func (f *fakeMetrics) NotificationResult(channel, result string) {
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[channel+"/"+result]++
}

type fakePrefs struct {
	prefs map[string]*entity.AlertPreferences
}

func (f *fakePrefs) Get(_ context.Context, companyID string) (*entity.AlertPreferences, error) {
	return f.prefs[companyID], nil
}

func (f *fakePrefs) Save(_ context.Context, p *entity.AlertPreferences) error {
	if f.prefs == nil {
		f.prefs = map[string]*entity.AlertPreferences{}
	}
	f.prefs[p.CompanyID] = p
	return nil
}

func settingsOnly(event entity.EventType, ch entity.ChannelSettings) entity.NotificationSettings {
	s := make(entity.NotificationSettings, len(entity.EventTypes))
	for _, e := range entity.EventTypes {
		s[e] = entity.ChannelSettings{}
	}
	s[event] = ch
	return s
}
