package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ContactRepository destinatarios de notificaciones por empresa.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.NotificationContact) error
	GetByID(ctx context.Context, companyID, id string) (*entity.NotificationContact, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.NotificationContact, error)
	Update(ctx context.Context, contact *entity.NotificationContact) error
	Delete(ctx context.Context, companyID, id string) error
}

// PushSubscriptionRepository suscripciones push indexadas por endpoint.
type PushSubscriptionRepository interface {
	// Upsert inserta o reemplaza la suscripción con el mismo endpoint.
	Upsert(ctx context.Context, sub *entity.PushSubscription) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// NotificationRepository historial append-only.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListRecent devuelve las más recientes primero (created_at DESC) hasta limit.
	ListRecent(ctx context.Context, companyID, userID string, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, companyID, id string) error
	MarkAllRead(ctx context.Context, companyID, userID string) (int64, error)
}

// AlertPreferencesRepository ventana del barrido por empresa.
// Get devuelve (nil, nil) si la empresa no tiene preferencias guardadas.
type AlertPreferencesRepository interface {
	Get(ctx context.Context, companyID string) (*entity.AlertPreferences, error)
	Save(ctx context.Context, prefs *entity.AlertPreferences) error
}
