package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain"
)

// EventType evento de negocio que genera notificaciones.
type EventType string

// Los cinco eventos fijos del sistema.
const (
	EventInstallmentDueSoon EventType = "Vencimiento de cuota"
	EventInstallmentOverdue EventType = "Cuota vencida"
	EventOrderStatusChanged EventType = "Cambio de estado del pedido"
	EventNewDocument        EventType = "Documento nuevo"
	EventNewExpense         EventType = "Gasto nuevo"
)

// EventTypes lista fija de eventos, en el orden en que se muestran.
var EventTypes = []EventType{
	EventInstallmentDueSoon,
	EventInstallmentOverdue,
	EventOrderStatusChanged,
	EventNewDocument,
	EventNewExpense,
}

// IsValid verifica que el evento sea uno de los cinco conocidos.
func (e EventType) IsValid() bool {
	for _, t := range EventTypes {
		if t == e {
			return true
		}
	}
	return false
}

// Canales de entrega.
const (
	ChannelEmail = "email"
	ChannelInApp = "inApp"
	ChannelPush  = "push"
)

// ChannelSettings activación por canal para un evento.
type ChannelSettings struct {
	Email bool `json:"email"`
	InApp bool `json:"inApp"`
	Push  bool `json:"push"`
}

// UnmarshalJSON exige las tres claves de canal; una clave ausente no se toma como false.
func (c *ChannelSettings) UnmarshalJSON(b []byte) error {
	var raw struct {
		Email *bool `json:"email"`
		InApp *bool `json:"inApp"`
		Push  *bool `json:"push"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Email == nil || raw.InApp == nil || raw.Push == nil {
		return fmt.Errorf("%w: cada evento debe traer %s, %s y %s", domain.ErrInvalidInput, ChannelEmail, ChannelInApp, ChannelPush)
	}
	*c = ChannelSettings{Email: *raw.Email, InApp: *raw.InApp, Push: *raw.Push}
	return nil
}

// Any indica si al menos un canal está activo.
func (c ChannelSettings) Any() bool {
	return c.Email || c.InApp || c.Push
}

// NotificationSettings preferencias de un destinatario, por evento.
type NotificationSettings map[EventType]ChannelSettings

// Complete verifica que estén los cinco eventos.
func (s NotificationSettings) Complete() bool {
	for _, e := range EventTypes {
		if _, ok := s[e]; !ok {
			return false
		}
	}
	return true
}

// DefaultNotificationSettings todos los eventos con todos los canales activos.
func DefaultNotificationSettings() NotificationSettings {
	s := make(NotificationSettings, len(EventTypes))
	for _, e := range EventTypes {
		s[e] = ChannelSettings{Email: true, InApp: true, Push: true}
	}
	return s
}

// NotificationContact destinatario de notificaciones de la empresa.
type NotificationContact struct {
	ID        string
	CompanyID string
	UserID    string // opcional: usuario de la app asociado (historial in-app)
	Name      string
	Email     string
	Settings  NotificationSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PushSubscription suscripción de navegador (clave: Endpoint).
type PushSubscription struct {
	Endpoint  string
	CompanyID string
	UserID    string
	P256dh    string
	Auth      string
	UserAgent string
	CreatedAt time.Time
}

// Notification registro del historial (append-only).
type Notification struct {
	ID           string
	CompanyID    string
	UserID       string
	CreatedAt    time.Time
	Type         EventType
	Channel      string
	Title        string
	Body         string
	IsRead       bool
	ReferenceURL string
}

// AlertPreferences ventana del barrido de vencimientos para una empresa.
type AlertPreferences struct {
	CompanyID  string
	DaysBefore int
	UpdatedAt  time.Time
}
