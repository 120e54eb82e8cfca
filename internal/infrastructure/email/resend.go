package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v2"

	"github.com/jhoicas/pedidos-api/internal/application/notifications"
)

var _ notifications.EmailSender = (*Client)(nil)

// Client envía correos transaccionales vía Resend.
type Client struct {
	apiKey string
	from   string
	api    *resend.Client
}

// Option ajusta el cliente (pruebas: URL base y http.Client).
type Option func(*Client)

// WithBaseURL apunta el cliente a otra URL de la API.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.api.BaseURL = u
		}
	}
}

// WithHTTPClient reemplaza el http.Client usado por Resend.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		base := c.api.BaseURL
		c.api = resend.NewCustomClient(hc, c.apiKey)
		c.api.BaseURL = base
	}
}

// NewClient construye el cliente; sin apiKey queda sin configurar.
func NewClient(apiKey, from string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		from:   from,
		api:    resend.NewClient(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured indica si hay API key y remitente.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.from != ""
}

// Send envía el correo y devuelve el id asignado por Resend.
func (c *Client) Send(ctx context.Context, msg notifications.EmailMessage) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("email client not configured: missing RESEND_API_KEY or EMAIL_FROM")
	}
	sent, err := c.api.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
