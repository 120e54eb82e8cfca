package webpush

import (
	"context"
	"crypto/ecdh"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

var _ notifications.PushSender = (*Sender)(nil)

// defaultTTL segundos que el servicio push retiene el mensaje si el navegador está offline.
const defaultTTL = 86400

// Sender envía notificaciones Web Push firmadas con VAPID.
type Sender struct {
	publicKey  string
	privateKey string
	subject    string
	enabled    bool
	httpClient webpush.HTTPClient
}

// Option ajusta el Sender.
type Option func(*Sender)

// WithHTTPClient reemplaza el cliente HTTP (pruebas).
func WithHTTPClient(c webpush.HTTPClient) Option {
	return func(s *Sender) {
		s.httpClient = c
	}
}

// NewSender construye el Sender. subject es el contacto VAPID (mailto: o https:).
func NewSender(publicKey, privateKey, subject string, opts ...Option) *Sender {
	s := &Sender{publicKey: publicKey, privateKey: privateKey, subject: subject}
	s.enabled = validVAPIDPair(publicKey, privateKey)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled false si falta alguna de las claves VAPID o no forman un par P-256 válido.
func (s *Sender) Enabled() bool {
	return s.enabled
}

// validVAPIDPair exige un punto P-256 sin comprimir (65 bytes), un escalar de 32 bytes
// y que la pública corresponda a la privada.
func validVAPIDPair(publicKey, privateKey string) bool {
	if publicKey == "" || privateKey == "" {
		return false
	}
	rawPub, err := decodeVAPIDKey(publicKey)
	if err != nil {
		return false
	}
	rawPriv, err := decodeVAPIDKey(privateKey)
	if err != nil {
		return false
	}
	pub, err := ecdh.P256().NewPublicKey(rawPub)
	if err != nil {
		return false
	}
	priv, err := ecdh.P256().NewPrivateKey(rawPriv)
	if err != nil {
		return false
	}
	return priv.PublicKey().Equal(pub)
}

// decodeVAPIDKey acepta base64 url con o sin relleno.
func decodeVAPIDKey(key string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(key, "="))
}

// PublicKey clave pública VAPID para la suscripción en el navegador.
func (s *Sender) PublicKey() string {
	return s.publicKey
}

// Send cifra y envía el mensaje. 404/410 -> domain.ErrSubscriptionExpired.
func (s *Sender) Send(ctx context.Context, sub *entity.PushSubscription, msg notifications.PushMessage) error {
	if !s.Enabled() {
		return domain.ErrChannelDisabled
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.httpClient,
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             defaultTTL,
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return domain.ErrSubscriptionExpired
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

// GenerateVAPIDKeys genera un par de claves VAPID (P-256, base64 url).
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
	if err != nil {
		return "", "", fmt.Errorf("generate VAPID keys: %w", err)
	}
	return publicKey, privateKey, nil
}
