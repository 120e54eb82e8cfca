package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// ContactUseCase CRUD de destinatarios de notificaciones.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// ValidateSettings exige los cinco eventos y rechaza claves desconocidas.
func ValidateSettings(s entity.NotificationSettings) error {
	for ev := range s {
		if !ev.IsValid() {
			return fmt.Errorf("%w: evento desconocido %q", domain.ErrInvalidInput, ev)
		}
	}
	if !s.Complete() {
		return fmt.Errorf("%w: settings debe incluir los %d eventos", domain.ErrInvalidInput, len(entity.EventTypes))
	}
	return nil
}

func validateContact(in dto.ContactRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return ValidateSettings(in.Settings)
}

// Create registra un contacto.
func (uc *ContactUseCase) Create(ctx context.Context, companyID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.NotificationContact{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Settings:  in.Settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// Get obtiene un contacto de la empresa.
func (uc *ContactUseCase) Get(ctx context.Context, companyID, id string) (*dto.ContactResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toContactResponse(c), nil
}

// List contactos de la empresa.
func (uc *ContactUseCase) List(ctx context.Context, companyID string) ([]dto.ContactResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return items, nil
}

// Update reemplaza nombre, email y settings.
func (uc *ContactUseCase) Update(ctx context.Context, companyID, id string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.UserID = in.UserID
	c.Settings = in.Settings
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// Delete elimina un contacto.
func (uc *ContactUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func toContactResponse(c *entity.NotificationContact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		UserID:    c.UserID,
		Settings:  c.Settings,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
