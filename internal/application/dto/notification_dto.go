package dto

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ContactRequest entrada para crear o reemplazar un contacto de notificaciones.
// Settings debe traer los cinco eventos.
type ContactRequest struct {
	Name     string                      `json:"name" validate:"required"`
	Email    string                      `json:"email" validate:"required,email"`
	UserID   string                      `json:"user_id"`
	Settings entity.NotificationSettings `json:"settings" validate:"required"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name"`
	Email     string                      `json:"email"`
	UserID    string                      `json:"user_id,omitempty"`
	Settings  entity.NotificationSettings `json:"settings"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// PushSubscriptionRequest suscripción tal como la entrega el navegador (PushSubscription.toJSON()).
type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// UnsubscribeRequest baja de una suscripción por endpoint.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

// VAPIDKeyResponse clave pública para suscribirse desde el navegador.
type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
	Enabled   bool   `json:"enabled"`
}

// NotificationResponse registro del historial.
type NotificationResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Channel      string    `json:"channel"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	IsRead       bool      `json:"is_read"`
	ReferenceURL string    `json:"reference_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationListResponse historial, más recientes primero.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}

// MarkAllReadResponse cantidad de registros marcados.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// DispatchRequest disparo manual de un evento.
type DispatchRequest struct {
	Event   string         `json:"event" validate:"required"`
	Payload PayloadRequest `json:"payload"`
}

// PayloadRequest datos opcionales del evento; los ausentes se renderizan como N/A o 0.00.
type PayloadRequest struct {
	OrderID      string `json:"order_id"`
	OrderNumber  string `json:"order_number"`
	ProviderName string `json:"provider_name"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	DueDate      *Date  `json:"due_date"`
	Status       string `json:"status"`
	DocumentType string `json:"document_type"`
	ExpenseType  string `json:"expense_type"`
}

// DispatchResponse resumen de un despacho.
type DispatchResponse struct {
	Event      string   `json:"event"`
	Contacts   int      `json:"contacts"`
	EmailsSent int      `json:"emails_sent"`
	InAppSaved int      `json:"in_app_saved"`
	PushSent   int      `json:"push_sent"`
	Errors     []string `json:"errors"`
}

// AlertPreferencesRequest ventana del barrido.
type AlertPreferencesRequest struct {
	DaysBefore int `json:"days_before" validate:"min=0,max=90"`
}

// AlertPreferencesResponse preferencias vigentes (defaults si no se guardaron).
type AlertPreferencesResponse struct {
	DaysBefore int        `json:"days_before"`
	IsDefault  bool       `json:"is_default"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
