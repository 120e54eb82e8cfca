package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// MaxDaysBefore tope de la ventana "próximo a vencer".
const MaxDaysBefore = 90

// PreferencesUseCase ventana de aviso del barrido por empresa.
type PreferencesUseCase struct {
	repo        repository.AlertPreferencesRepository
	defaultDays int
}

// NewPreferencesUseCase construye el caso de uso; defaultDays aplica cuando la empresa no guardó nada.
func NewPreferencesUseCase(repo repository.AlertPreferencesRepository, defaultDays int) *PreferencesUseCase {
	return &PreferencesUseCase{repo: repo, defaultDays: defaultDays}
}

// Effective preferencias vigentes de la empresa (defaults si no existen).
func (uc *PreferencesUseCase) Effective(ctx context.Context, companyID string) (*entity.AlertPreferences, bool, error) {
	prefs, err := uc.repo.Get(ctx, companyID)
	if err != nil {
		return nil, false, err
	}
	if prefs == nil {
		return &entity.AlertPreferences{CompanyID: companyID, DaysBefore: uc.defaultDays}, true, nil
	}
	return prefs, false, nil
}

// Get preferencias para la API.
func (uc *PreferencesUseCase) Get(ctx context.Context, companyID string) (*dto.AlertPreferencesResponse, error) {
	prefs, isDefault, err := uc.Effective(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.AlertPreferencesResponse{DaysBefore: prefs.DaysBefore, IsDefault: isDefault}
	if !isDefault {
		t := prefs.UpdatedAt
		out.UpdatedAt = &t
	}
	return out, nil
}

// Save guarda la ventana de aviso.
func (uc *PreferencesUseCase) Save(ctx context.Context, companyID string, in dto.AlertPreferencesRequest) (*dto.AlertPreferencesResponse, error) {
	if in.DaysBefore < 0 || in.DaysBefore > MaxDaysBefore {
		return nil, fmt.Errorf("%w: days_before debe estar entre 0 y %d", domain.ErrInvalidInput, MaxDaysBefore)
	}
	now := time.Now().UTC()
	prefs := &entity.AlertPreferences{CompanyID: companyID, DaysBefore: in.DaysBefore, UpdatedAt: now}
	if err := uc.repo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return &dto.AlertPreferencesResponse{DaysBefore: prefs.DaysBefore, UpdatedAt: &now}, nil
}
