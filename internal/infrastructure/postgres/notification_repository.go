package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var (
	_ repository.ContactRepository          = (*ContactRepo)(nil)
	_ repository.PushSubscriptionRepository = (*PushSubscriptionRepo)(nil)
	_ repository.NotificationRepository     = (*NotificationRepo)(nil)
	_ repository.AlertPreferencesRepository = (*AlertPreferencesRepo)(nil)
)

// ── contactos ────────────────────────────────────────────────────────────────

// ContactRepo destinatarios; las preferencias por evento van en JSONB.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, company_id, user_id, name, email, settings, created_at, updated_at`

// Create persiste un contacto.
func (r *ContactRepo) Create(ctx context.Context, c *entity.NotificationContact) error {
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	query := `INSERT INTO notification_contacts (` + contactColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.UserID, c.Name, c.Email, string(settings), c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto de la empresa.
func (r *ContactRepo) GetByID(ctx context.Context, companyID, id string) (*entity.NotificationContact, error) {
	query := `SELECT ` + contactColumns + ` FROM notification_contacts WHERE company_id = $1 AND id = $2`
	c, err := scanContact(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// ListByCompany contactos de la empresa por nombre.
func (r *ContactRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.NotificationContact, error) {
	query := `SELECT ` + contactColumns + ` FROM notification_contacts WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var list []*entity.NotificationContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reescribe nombre, email, usuario y preferencias.
func (r *ContactRepo) Update(ctx context.Context, c *entity.NotificationContact) error {
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE notification_contacts SET user_id = $3, name = $4, email = $5, settings = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`,
		c.CompanyID, c.ID, c.UserID, c.Name, c.Email, string(settings), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un contacto.
func (r *ContactRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM notification_contacts WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanContact(row pgxScanner) (*entity.NotificationContact, error) {
	var (
		c   entity.NotificationContact
		raw []byte
	)
	if err := row.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.Name, &c.Email, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &c.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &c, nil
}

// ── suscripciones push ───────────────────────────────────────────────────────

// PushSubscriptionRepo suscripciones indexadas por endpoint.
type PushSubscriptionRepo struct {
	q Querier
}

// NewPushSubscriptionRepository construye el adaptador.
func NewPushSubscriptionRepository(q Querier) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{q: q}
}

// Upsert inserta o reemplaza la suscripción del endpoint.
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, s *entity.PushSubscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO push_subscriptions (endpoint, company_id, user_id, p256dh, auth, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (endpoint) DO UPDATE SET
			company_id = EXCLUDED.company_id, user_id = EXCLUDED.user_id,
			p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth, user_agent = EXCLUDED.user_agent`,
		s.Endpoint, s.CompanyID, s.UserID, s.P256dh, s.Auth, s.UserAgent, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

// ListByCompany suscripciones de la empresa.
func (r *PushSubscriptionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PushSubscription, error) {
	rows, err := r.q.Query(ctx, `
		SELECT endpoint, company_id, user_id, p256dh, auth, user_agent, created_at
		FROM push_subscriptions WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.PushSubscription
	for rows.Next() {
		var s entity.PushSubscription
		if err := rows.Scan(&s.Endpoint, &s.CompanyID, &s.UserID, &s.P256dh, &s.Auth, &s.UserAgent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeleteByEndpoint borra la suscripción; no existir no es error.
func (r *PushSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// ── historial ────────────────────────────────────────────────────────────────

// NotificationRepo historial append-only.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create agrega un registro al historial.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, company_id, user_id, created_at, type, channel, title, body, is_read, reference_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.CompanyID, n.UserID, n.CreatedAt, string(n.Type), n.Channel, n.Title, n.Body, n.IsRead, n.ReferenceURL,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListRecent más recientes primero; userID vacío = toda la empresa.
func (r *NotificationRepo) ListRecent(ctx context.Context, companyID, userID string, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, created_at, type, channel, title, body, is_read, reference_url
		FROM notifications
		WHERE company_id = $1 AND ($2 = '' OR user_id = $2)
		ORDER BY created_at DESC LIMIT $3`, companyID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var (
			n         entity.Notification
			eventType string
		)
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.CreatedAt, &eventType, &n.Channel, &n.Title, &n.Body, &n.IsRead, &n.ReferenceURL); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = entity.EventType(eventType)
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = true WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca las no leídas del usuario; devuelve cuántas cambiaron.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, companyID, userID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE company_id = $1 AND user_id = $2 AND is_read = false`, companyID, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ── preferencias de alerta ───────────────────────────────────────────────────

// AlertPreferencesRepo ventana del barrido por empresa.
type AlertPreferencesRepo struct {
	q Querier
}

// NewAlertPreferencesRepository construye el adaptador.
func NewAlertPreferencesRepository(q Querier) *AlertPreferencesRepo {
	return &AlertPreferencesRepo{q: q}
}

// Get (nil, nil) si la empresa no guardó preferencias.
func (r *AlertPreferencesRepo) Get(ctx context.Context, companyID string) (*entity.AlertPreferences, error) {
	var p entity.AlertPreferences
	err := r.q.QueryRow(ctx, `
		SELECT company_id, days_before, updated_at FROM alert_preferences WHERE company_id = $1`, companyID,
	).Scan(&p.CompanyID, &p.DaysBefore, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert preferences: %w", err)
	}
	return &p, nil
}

// Save inserta o actualiza.
func (r *AlertPreferencesRepo) Save(ctx context.Context, p *entity.AlertPreferences) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alert_preferences (company_id, days_before, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (company_id) DO UPDATE SET days_before = EXCLUDED.days_before, updated_at = EXCLUDED.updated_at`,
		p.CompanyID, p.DaysBefore, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save alert preferences: %w", err)
	}
	return nil
}
