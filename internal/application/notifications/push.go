package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// PushUseCase alta y baja de suscripciones del navegador.
type PushUseCase struct {
	repo   repository.PushSubscriptionRepository
	sender PushSender
}

// NewPushUseCase construye el caso de uso. sender puede ser nil (push deshabilitado).
func NewPushUseCase(repo repository.PushSubscriptionRepository, sender PushSender) *PushUseCase {
	return &PushUseCase{repo: repo, sender: sender}
}

// VAPIDPublicKey clave pública que el navegador usa en pushManager.subscribe.
func (uc *PushUseCase) VAPIDPublicKey() dto.VAPIDKeyResponse {
	if uc.sender == nil || !uc.sender.Enabled() {
		return dto.VAPIDKeyResponse{}
	}
	return dto.VAPIDKeyResponse{PublicKey: uc.sender.PublicKey(), Enabled: true}
}

// Subscribe guarda (o reemplaza) la suscripción identificada por su endpoint.
func (uc *PushUseCase) Subscribe(ctx context.Context, companyID, userID, userAgent string, in dto.PushSubscriptionRequest) error {
	if uc.sender == nil || !uc.sender.Enabled() {
		return domain.ErrChannelDisabled
	}
	endpoint := strings.TrimSpace(in.Endpoint)
	if !strings.HasPrefix(endpoint, "https://") {
		return fmt.Errorf("%w: endpoint debe ser https", domain.ErrInvalidInput)
	}
	if in.Keys.P256dh == "" || in.Keys.Auth == "" {
		return fmt.Errorf("%w: faltan las claves p256dh/auth", domain.ErrInvalidInput)
	}
	return uc.repo.Upsert(ctx, &entity.PushSubscription{
		Endpoint:  endpoint,
		CompanyID: companyID,
		UserID:    userID,
		P256dh:    in.Keys.P256dh,
		Auth:      in.Keys.Auth,
		UserAgent: userAgent,
		CreatedAt: time.Now().UTC(),
	})
}

// Unsubscribe elimina la suscripción si pertenece a la empresa.
func (uc *PushUseCase) Unsubscribe(ctx context.Context, companyID, endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return fmt.Errorf("%w: endpoint requerido", domain.ErrInvalidInput)
	}
	subs, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	for _, s := range subs {
		if s.Endpoint == endpoint {
			return uc.repo.DeleteByEndpoint(ctx, endpoint)
		}
	}
	return domain.ErrNotFound
}
