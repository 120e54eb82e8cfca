package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/application/providers"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memProviders struct {
	items map[string]*entity.Provider
}

func (m *memProviders) Create(_ context.Context, p *entity.Provider) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProviders) GetByID(_ context.Context, companyID, id string) (*entity.Provider, error) {
	p := m.items[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}

func (m *memProviders) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Provider, error) {
	var out []*entity.Provider
	for _, p := range m.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProviders) Update(_ context.Context, p *entity.Provider) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProviders) Delete(_ context.Context, _, id string) error {
	delete(m.items, id)
	return nil
}

// ordersByProvider solo responde List; el resto no se usa desde ProviderUseCase.
type ordersByProvider struct {
	count map[string]int
}

func (o *ordersByProvider) Create(context.Context, *entity.Order) error { return nil }
func (o *ordersByProvider) GetByID(context.Context, string, string) (*entity.Order, error) {
	return nil, nil
}
func (o *ordersByProvider) GetByNumber(context.Context, string, string) (*entity.Order, error) {
	return nil, nil
}
func (o *ordersByProvider) List(_ context.Context, _ string, f entity.OrderFilter) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, o.count[f.ProviderID])
	for i := 0; i < o.count[f.ProviderID]; i++ {
		out = append(out, &entity.Order{ProviderID: f.ProviderID})
	}
	return out, nil
}
func (o *ordersByProvider) Update(context.Context, *entity.Order) error  { return nil }
func (o *ordersByProvider) Delete(context.Context, string, string) error { return nil }

type stubCompanies struct {
	company *entity.Company
	ids     []string
	err     error
}

func (s *stubCompanies) Create(context.Context, *entity.Company) error { return nil }
func (s *stubCompanies) GetByID(context.Context, string) (*entity.Company, error) {
	return s.company, s.err
}
func (s *stubCompanies) ListActiveIDs(context.Context) ([]string, error) { return s.ids, s.err }

type stubHolidayClient struct {
	calls int
}

func (s *stubHolidayClient) PublicHolidays(_ context.Context, year int, country string) ([]entity.Holiday, error) {
	s.calls++
	return []entity.Holiday{
		{Date: time.Date(year, 9, 18, 0, 0, 0, 0, time.UTC), Name: "Independencia Nacional", CountryCode: country},
	}, nil
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	requests []recordedRequest
}

func (f *fakeHTTPMetrics) HTTPRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

// withClaims simula lo que deja AuthMiddleware en Locals.
func withClaims(companyID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalCompanyID, companyID)
		c.Locals(apphttp.LocalRole, role)
		return c.Next()
	}
}

func providerApp(repo *memProviders, orders *ordersByProvider) *fiber.App {
	h := apphttp.NewProviderHandler(providers.NewProviderUseCase(repo, orders))
	app := fiber.New()
	g := app.Group("/api/providers", withClaims(testCompanyID, "admin"))
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Delete("/:id", h.Delete)
	return app
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// ProviderHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestProviderHandler_CreateDevuelve201(t *testing.T) {
	repo := &memProviders{items: map[string]*entity.Provider{}}
	app := providerApp(repo, &ordersByProvider{})

	body := `{"name":"Textiles Andes","country":"cl","payment_terms":{"type":"credito","days":"30","downPaymentPercentage":20}}`
	req := httptest.NewRequest(http.MethodPost, "/api/providers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProviderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testCompanyID, out.CompanyID)
	assert.Equal(t, "credito", out.PaymentTerms.Type)
	assert.Equal(t, 30, out.PaymentTerms.Days)
	assert.Len(t, repo.items, 1)
}

func TestProviderHandler_CreateCuerpoInvalido_Retorna400(t *testing.T) {
	app := providerApp(&memProviders{items: map[string]*entity.Provider{}}, &ordersByProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/providers", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp.Body).Code)
}

func TestProviderHandler_CondicionInvalida_Retorna400(t *testing.T) {
	app := providerApp(&memProviders{items: map[string]*entity.Provider{}}, &ordersByProvider{})

	body := `{"name":"X","payment_terms":{"type":"credito","days":30,"downPaymentPercentage":150}}`
	req := httptest.NewRequest(http.MethodPost, "/api/providers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PAYMENT_TERMS", decodeError(t, resp.Body).Code)
}

func TestProviderHandler_GetDeOtraEmpresa_Retorna404(t *testing.T) {
	repo := &memProviders{items: map[string]*entity.Provider{
		"p-1": {ID: "p-1", CompanyID: "otra-empresa", Name: "Ajeno"},
	}}
	app := providerApp(repo, &ordersByProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/providers/p-1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PROVIDER_NOT_FOUND", decodeError(t, resp.Body).Code)
}

func TestProviderHandler_DeleteConPedidos_Retorna409(t *testing.T) {
	repo := &memProviders{items: map[string]*entity.Provider{
		"p-1": {ID: "p-1", CompanyID: testCompanyID, Name: "Con pedidos"},
	}}
	app := providerApp(repo, &ordersByProvider{count: map[string]int{"p-1": 2}})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/providers/p-1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, resp.Body).Code)
	assert.Contains(t, repo.items, "p-1")
}

func TestProviderHandler_DeleteSinPedidos_Retorna204(t *testing.T) {
	repo := &memProviders{items: map[string]*entity.Provider{
		"p-1": {ID: "p-1", CompanyID: testCompanyID, Name: "Libre"},
	}}
	app := providerApp(repo, &ordersByProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/providers/p-1", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.items)
}

func TestProviderHandler_SinEmpresa_Retorna401(t *testing.T) {
	h := apphttp.NewProviderHandler(providers.NewProviderUseCase(&memProviders{items: map[string]*entity.Provider{}}, &ordersByProvider{}))
	app := fiber.New()
	app.Get("/api/providers/:id", h.GetByID)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/providers/p-1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderHandler: validaciones previas al caso de uso
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderHandler_CuotaNoNumerica_Retorna400(t *testing.T) {
	h := apphttp.NewOrderHandler(nil, nil)
	app := fiber.New()
	app.Post("/api/orders/:id/installments/:number/pay", withClaims(testCompanyID, "finanzas"), h.MarkInstallmentPaid)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/orders/o-1/installments/abc/pay", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp.Body).Code)
}

func TestOrderHandler_ImportSinArchivo_Retorna400(t *testing.T) {
	h := apphttp.NewOrderHandler(nil, nil)
	app := fiber.New()
	app.Post("/api/orders/payments/import", withClaims(testCompanyID, "finanzas"), h.ImportPayments)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/payments/import", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decodeError(t, resp.Body).Code)
}

func TestOrderHandler_StatementSinGenerador_Retorna503(t *testing.T) {
	h := apphttp.NewOrderHandler(nil, nil)
	app := fiber.New()
	app.Get("/api/orders/:id/statement", withClaims(testCompanyID, "admin"), h.Statement)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/o-1/statement", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// NotificationHandler
// ──────────────────────────────────────────────────────────────────────────────

func contactApp() *fiber.App {
	h := apphttp.NewNotificationHandler(notifications.NewContactUseCase(nil), nil, nil, nil, nil)
	app := fiber.New()
	g := app.Group("/api/notification-contacts", withClaims(testCompanyID, "admin"))
	g.Post("/", h.CreateContact)
	g.Put("/:id", h.UpdateContact)
	return app
}

func TestNotificationHandler_ContactoSinCanal_Retorna400Validacion(t *testing.T) {
	body := `{"name":"Ana","email":"ana@example.com","settings":{"Gasto nuevo":{"email":true}}}`
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		path := "/api/notification-contacts/"
		if method == http.MethodPut {
			path += "c-1"
		}
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := contactApp().Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, method)
		assert.Equal(t, "VALIDATION", decodeError(t, resp.Body).Code, method)
		resp.Body.Close()
	}
}

func TestNotificationHandler_ContactoJSONMalFormado_Retorna400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/notification-contacts/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := contactApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp.Body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// HolidayHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestHolidayHandler_ListaFeriados(t *testing.T) {
	client := &stubHolidayClient{}
	h := apphttp.NewHolidayHandler(holidays.NewUseCase(client, nil, time.Hour, "CL", logger.Nop()))
	app := fiber.New()
	app.Get("/api/holidays", h.List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/holidays?year=2024&country=cl", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.HolidayResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "2024-09-18", out[0].Date)
	assert.Equal(t, "CL", out[0].CountryCode)
	assert.Equal(t, 1, client.calls)
}

func TestHolidayHandler_PaisInvalido_Retorna400(t *testing.T) {
	h := apphttp.NewHolidayHandler(holidays.NewUseCase(&stubHolidayClient{}, nil, time.Hour, "CL", logger.Nop()))
	app := fiber.New()
	app.Get("/api/holidays", h.List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/holidays?year=2024&country=chile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// CronHandler
// ──────────────────────────────────────────────────────────────────────────────

func cronHandlerApp(companies *stubCompanies) *fiber.App {
	sweeper := sweep.NewSweeper(companies, nil, nil, nil, nil, nil, sweep.Config{DefaultDaysBefore: 3}, logger.Nop())
	h := apphttp.NewCronHandler(sweeper, logger.Nop())
	app := fiber.New()
	app.Get("/api/cron/expirations", apphttp.CronAuth("s3cr3t"), h.Expirations)
	return app
}

func TestCronHandler_SinEmpresas_RespondeOK(t *testing.T) {
	app := cronHandlerApp(&stubCompanies{})
	req := httptest.NewRequest(http.MethodGet, "/api/cron/expirations", nil)
	req.Header.Set("Authorization", "Bearer s3cr3t")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CronResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.OK)
	assert.Empty(t, out.Results)
	assert.Contains(t, out.Message, "0 alertas")
}

func TestCronHandler_FallaInterna_Retorna500(t *testing.T) {
	app := cronHandlerApp(&stubCompanies{err: errors.New("conexión rechazada")})
	req := httptest.NewRequest(http.MethodGet, "/api/cron/expirations", nil)
	req.Header.Set("Authorization", "Bearer s3cr3t")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out dto.CronResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "conexión rechazada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Middlewares de empresa y registro de peticiones
// ──────────────────────────────────────────────────────────────────────────────

func companyApp(companies *stubCompanies) *fiber.App {
	app := fiber.New()
	app.Get("/x", withClaims(testCompanyID, "admin"), apphttp.RequireActiveCompany(companies), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireActiveCompany_EmpresaActiva(t *testing.T) {
	app := companyApp(&stubCompanies{company: &entity.Company{ID: testCompanyID, Status: "active"}})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveCompany_EmpresaSuspendida_Retorna403(t *testing.T) {
	app := companyApp(&stubCompanies{company: &entity.Company{ID: testCompanyID, Status: "suspended"}})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "COMPANY_INACTIVE", decodeError(t, resp.Body).Code)
}

func TestRequireActiveCompany_FallaDeBase_Retorna503(t *testing.T) {
	app := companyApp(&stubCompanies{err: errors.New("timeout")})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestLogger_RegistraMetrica(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeHTTPMetrics{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.FromWriter(&buf), m))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "/ok", status: http.StatusOK}, m.requests[0])
	assert.Contains(t, buf.String(), `"route":"/ok"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogger_Error5xxIncluyeCausa(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.FromWriter(&buf), nil))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return errors.New("disco lleno")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "disco lleno")
}
