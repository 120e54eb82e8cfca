package notifications

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// EmailMessage correo ya renderizado.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender puerto del proveedor de correo. Devuelve el id asignado por el proveedor.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (string, error)
}

// PushMessage contenido JSON que recibe el service worker.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// PushSender puerto de Web Push. Enabled es false cuando faltan las claves VAPID o son inválidas;
// en ese caso el despachador omite el canal push completo.
// Send devuelve domain.ErrSubscriptionExpired cuando el servicio responde 404/410.
type PushSender interface {
	Enabled() bool
	PublicKey() string
	Send(ctx context.Context, sub *entity.PushSubscription, msg PushMessage) error
}

// Metrics contadores de entregas por canal y resultado (ok, error, expired).
type Metrics interface {
	NotificationResult(channel, result string)
}

type nopMetrics struct{}

func (nopMetrics) NotificationResult(string, string) {}

// Notifier lo que los demás casos de uso necesitan del despachador.
type Notifier interface {
	Dispatch(ctx context.Context, companyID string, event entity.EventType, p Payload) (*DispatchResult, error)
}
