package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	u, _ := m.GetByEmail(ctx, email)
	if u != nil && u.CompanyID == companyID {
		return u, nil
	}
	return nil, nil
}

type memCompanies struct{ byID map[string]*entity.Company }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}

func (m *memCompanies) ListActiveIDs(context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

const secret = "secreto-de-prueba"

func newUseCase() (*auth.AuthUseCase, *memCompanies) {
	companies := &memCompanies{byID: map[string]*entity.Company{}}
	users := &memUsers{byID: map[string]*entity.User{}}
	return auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "pedidos-api"}), companies
}

func TestRegister_CreaEmpresaYAdmin(t *testing.T) {
	uc, companies := newUseCase()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Empresa.cl", Password: "12345678", CompanyName: "Importadora Sur"})
	require.NoError(t, err)

	assert.Equal(t, "ana@empresa.cl", u.Email)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	require.Contains(t, companies.byID, u.CompanyID)
	assert.Equal(t, "Importadora Sur", companies.byID[u.CompanyID].Name)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@empresa.cl", Password: "12345678", CompanyID: u.CompanyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompras, second.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@empresa.cl", Password: "12345678", CompanyID: u.CompanyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.cl", Password: "corta", CompanyName: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.cl", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.cl", Password: "12345678", CompanyID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@empresa.cl", Password: "12345678", CompanyName: "Importadora Sur"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@empresa.cl", Password: "12345678"})
	require.NoError(t, err)
	userID, companyID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, u.CompanyID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@empresa.cl", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@empresa.cl", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)
	company, err := uc.Company(ctx, u.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Importadora Sur", company.Name)
}

type recordingTx struct{ calls int }

func (r *recordingTx) RunRegistration(_ context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	r.calls++
	return fn(&memCompanies{byID: map[string]*entity.Company{}}, &memUsers{byID: map[string]*entity.User{}})
}

func TestRegister_EmpresaNuevaUsaTransaccion(t *testing.T) {
	uc, _ := newUseCase()
	tx := &recordingTx{}
	uc.WithTxRunner(tx)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@empresa.cl", Password: "12345678", CompanyName: "Importadora Sur"})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}
