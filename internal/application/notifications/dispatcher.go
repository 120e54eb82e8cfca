package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Resultados registrados en métricas.
const (
	resultOK      = "ok"
	resultError   = "error"
	resultExpired = "expired"
)

// DispatchResult resumen de un despacho. Errors acumula fallas por ítem; ninguna detiene el resto.
type DispatchResult struct {
	Event      entity.EventType
	Contacts   int
	EmailsSent int
	InAppSaved int
	PushSent   int
	Errors     []string
}

func (r *DispatchResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Dispatcher convierte un evento de negocio en envíos concretos por canal para cada contacto de la empresa.
type Dispatcher struct {
	contacts      repository.ContactRepository
	subscriptions repository.PushSubscriptionRepository
	history       repository.NotificationRepository
	email         EmailSender
	push          PushSender
	metrics       Metrics
	log           *logger.Logger
	baseURL       string
	now           func() time.Time
}

// DispatcherOption ajustes opcionales del despachador.
type DispatcherOption func(*Dispatcher)

// WithMetrics registra resultados por canal.
func WithMetrics(m Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithBaseURL URL pública usada para los enlaces de correo y push.
func WithBaseURL(u string) DispatcherOption {
	return func(d *Dispatcher) { d.baseURL = u }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher construye el despachador. email y push pueden ser nil: el canal queda deshabilitado.
func NewDispatcher(
	contacts repository.ContactRepository,
	subscriptions repository.PushSubscriptionRepository,
	history repository.NotificationRepository,
	email EmailSender,
	push PushSender,
	log *logger.Logger,
	opts ...DispatcherOption,
) *Dispatcher {
	d := &Dispatcher{
		contacts:      contacts,
		subscriptions: subscriptions,
		history:       history,
		email:         email,
		push:          push,
		metrics:       nopMetrics{},
		log:           log,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch notifica el evento a todos los contactos de la empresa según sus preferencias.
// Solo falla si el evento es desconocido o no se pueden leer los contactos.
func (d *Dispatcher) Dispatch(ctx context.Context, companyID string, event entity.EventType, p Payload) (*DispatchResult, error) {
	if !event.IsValid() {
		return nil, domain.ErrInvalidEvent
	}
	subject, body, err := RenderTemplate(event, p)
	if err != nil {
		return nil, err
	}

	contacts, err := d.contacts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar contactos: %w", err)
	}

	res := &DispatchResult{Event: event}
	subs := d.loadSubscriptions(ctx, companyID, res)
	link := d.link(p)

	for _, c := range contacts {
		settings, ok := c.Settings[event]
		if !ok {
			continue
		}
		res.Contacts++

		if settings.Email {
			d.sendEmail(ctx, c, event, subject, body, link, res)
		}
		if settings.InApp {
			if err := d.record(ctx, companyID, c.UserID, event, entity.ChannelInApp, subject, body, link); err != nil {
				d.log.Error().Err(err).Str("event", string(event)).Str("contact", c.ID).Msg("no se pudo guardar la notificación in-app")
				d.metrics.NotificationResult(entity.ChannelInApp, resultError)
				res.fail("inApp %s: %v", c.Email, err)
			} else {
				d.metrics.NotificationResult(entity.ChannelInApp, resultOK)
				res.InAppSaved++
			}
		}
		if settings.Push && d.pushEnabled() {
			subs = d.sendPush(ctx, companyID, subs, event, subject, body, link, res)
		}
	}

	d.log.Info().
		Str("company_id", companyID).
		Str("event", string(event)).
		Str("order", p.OrderNumber).
		Int("contacts", res.Contacts).
		Int("emails", res.EmailsSent).
		Int("in_app", res.InAppSaved).
		Int("push", res.PushSent).
		Int("errors", len(res.Errors)).
		Msg("evento despachado")
	return res, nil
}

func (d *Dispatcher) pushEnabled() bool {
	return d.push != nil && d.push.Enabled()
}

func (d *Dispatcher) loadSubscriptions(ctx context.Context, companyID string, res *DispatchResult) []*entity.PushSubscription {
	if !d.pushEnabled() {
		return nil
	}
	subs, err := d.subscriptions.ListByCompany(ctx, companyID)
	if err != nil {
		d.log.Error().Err(err).Str("company_id", companyID).Msg("no se pudieron leer las suscripciones push")
		res.fail("push: %v", err)
		return nil
	}
	return subs
}

func (d *Dispatcher) sendEmail(ctx context.Context, c *entity.NotificationContact, event entity.EventType, subject, body, link string, res *DispatchResult) {
	if d.email == nil {
		return
	}
	html, err := renderHTML(subject, body, link)
	if err == nil {
		_, err = d.email.Send(ctx, EmailMessage{To: c.Email, Subject: subject, HTML: html, Text: body})
	}
	if err != nil {
		d.log.Warn().Err(err).Str("event", string(event)).Str("to", c.Email).Msg("falló el envío de correo")
		d.metrics.NotificationResult(entity.ChannelEmail, resultError)
		res.fail("email %s: %v", c.Email, err)
	} else {
		d.metrics.NotificationResult(entity.ChannelEmail, resultOK)
		res.EmailsSent++
	}
	if herr := d.record(ctx, c.CompanyID, c.UserID, event, entity.ChannelEmail, subject, body, link); herr != nil {
		d.log.Error().Err(herr).Str("event", string(event)).Str("to", c.Email).Msg("no se pudo registrar el historial de correo")
	}
}

// sendPush envía a cada suscripción almacenada y devuelve la lista sin las expiradas.
func (d *Dispatcher) sendPush(ctx context.Context, companyID string, subs []*entity.PushSubscription, event entity.EventType, subject, body, link string, res *DispatchResult) []*entity.PushSubscription {
	msg := PushMessage{Title: subject, Body: body, URL: link, Tag: string(event)}
	alive := make([]*entity.PushSubscription, 0, len(subs))
	for _, sub := range subs {
		err := d.push.Send(ctx, sub, msg)
		switch {
		case err == nil:
			d.metrics.NotificationResult(entity.ChannelPush, resultOK)
			res.PushSent++
			alive = append(alive, sub)
		case errors.Is(err, domain.ErrSubscriptionExpired):
			d.metrics.NotificationResult(entity.ChannelPush, resultExpired)
			d.log.Info().Str("endpoint", sub.Endpoint).Msg("suscripción push expirada, se elimina")
			if derr := d.subscriptions.DeleteByEndpoint(ctx, sub.Endpoint); derr != nil {
				d.log.Error().Err(derr).Str("endpoint", sub.Endpoint).Msg("no se pudo eliminar la suscripción expirada")
			}
			res.fail("push %s: %v", sub.Endpoint, err)
		default:
			d.metrics.NotificationResult(entity.ChannelPush, resultError)
			d.log.Warn().Err(err).Str("event", string(event)).Str("endpoint", sub.Endpoint).Msg("falló el envío push")
			res.fail("push %s: %v", sub.Endpoint, err)
			alive = append(alive, sub)
		}
		if herr := d.record(ctx, companyID, sub.UserID, event, entity.ChannelPush, subject, body, link); herr != nil {
			d.log.Error().Err(herr).Str("endpoint", sub.Endpoint).Msg("no se pudo registrar el historial push")
		}
	}
	return alive
}

func (d *Dispatcher) record(ctx context.Context, companyID, userID string, event entity.EventType, channel, title, body, link string) error {
	return d.history.Create(ctx, &entity.Notification{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		UserID:       userID,
		CreatedAt:    d.now().UTC(),
		Type:         event,
		Channel:      channel,
		Title:        title,
		Body:         body,
		ReferenceURL: link,
	})
}

func (d *Dispatcher) link(p Payload) string {
	if p.OrderID == "" {
		return ""
	}
	return d.baseURL + "/pedidos/" + p.OrderID
}
