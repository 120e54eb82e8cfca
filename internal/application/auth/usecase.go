package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner alta atómica de empresa + primer usuario.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(companies repository.CompanyRepository, users repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
	tx          TxRunner
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// WithTxRunner registra empresa y usuario en una sola transacción.
func (uc *AuthUseCase) WithTxRunner(tx TxRunner) *AuthUseCase {
	uc.tx = tx
	return uc
}

// RegisterUser crea un usuario con password bcrypt. Sin CompanyID crea la empresa (CompanyName) y el usuario queda como admin.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: email y password (mínimo 8 caracteres) requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now().UTC()
	role := in.Role
	companyID := in.CompanyID
	var company *entity.Company
	if companyID == "" {
		name := strings.TrimSpace(in.CompanyName)
		if name == "" {
			return nil, fmt.Errorf("%w: company_id o company_name requerido", domain.ErrInvalidInput)
		}
		company = &entity.Company{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		}
		companyID = company.ID
		role = entity.RoleAdmin
	} else {
		existing, err := uc.companyRepo.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound // empresa no existe
		}
	}
	if role == "" {
		role = entity.RoleCompras
	}
	if role != entity.RoleAdmin && role != entity.RoleCompras && role != entity.RoleFinanzas {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.persist(ctx, company, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// persist guarda la empresa nueva (si la hay) y el usuario.
func (uc *AuthUseCase) persist(ctx context.Context, company *entity.Company, user *entity.User) error {
	save := func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if company != nil {
			if err := companies.Create(ctx, company); err != nil {
				return err
			}
		}
		return users.Create(ctx, user)
	}
	if company != nil && uc.tx != nil {
		return uc.tx.RunRegistration(ctx, save)
	}
	return save(uc.companyRepo, uc.userRepo)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Company empresa del usuario autenticado.
func (uc *AuthUseCase) Company(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
