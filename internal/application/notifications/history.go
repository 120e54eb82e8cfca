package notifications

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryUseCase historial de notificaciones del usuario.
type HistoryUseCase struct {
	repo repository.NotificationRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.NotificationRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List más recientes primero, hasta limit (50 por defecto, 200 máximo).
func (uc *HistoryUseCase) List(ctx context.Context, companyID, userID string, limit int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	list, err := uc.repo.ListRecent(ctx, companyID, userID, limit)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(list))}
	for _, n := range list {
		if !n.IsRead {
			out.Unread++
		}
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca un registro como leído.
func (uc *HistoryUseCase) MarkRead(ctx context.Context, companyID, id string) error {
	return uc.repo.MarkRead(ctx, companyID, id)
}

// MarkAllRead marca todo el historial del usuario.
func (uc *HistoryUseCase) MarkAllRead(ctx context.Context, companyID, userID string) (*dto.MarkAllReadResponse, error) {
	n, err := uc.repo.MarkAllRead(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: n}, nil
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:           n.ID,
		Type:         string(n.Type),
		Channel:      n.Channel,
		Title:        n.Title,
		Body:         n.Body,
		IsRead:       n.IsRead,
		ReferenceURL: n.ReferenceURL,
		CreatedAt:    n.CreatedAt,
	}
}
