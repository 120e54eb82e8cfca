package notifications_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

func TestContactUseCase_CreateExigeLosCincoEventos(t *testing.T) {
	uc := notifications.NewContactUseCase(&fakeContacts{})
	incomplete := entity.NotificationSettings{entity.EventNewDocument: {Email: true}}

	_, err := uc.Create(context.Background(), company, dto.ContactRequest{Name: "Ana", Email: "ana@example.com", Settings: incomplete})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactUseCase_CreateRechazaEventoDesconocido(t *testing.T) {
	uc := notifications.NewContactUseCase(&fakeContacts{})
	s := entity.DefaultNotificationSettings()
	s["Pedido borrado"] = entity.ChannelSettings{Email: true}

	_, err := uc.Create(context.Background(), company, dto.ContactRequest{Name: "Ana", Email: "ana@example.com", Settings: s})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactRequest_CanalAusenteEsInvalido(t *testing.T) {
	body := `{"name":"Ana","email":"ana@example.com","settings":{
		"Vencimiento de cuota":{},
		"Cuota vencida":{"email":true,"inApp":true,"push":true},
		"Cambio de estado del pedido":{"email":true,"inApp":true,"push":true},
		"Documento nuevo":{"email":true,"inApp":true,"push":true},
		"Gasto nuevo":{"email":true}}}`

	var in dto.ContactRequest
	err := json.Unmarshal([]byte(body), &in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactRequest_CanalNuloEsInvalido(t *testing.T) {
	var s entity.ChannelSettings
	err := json.Unmarshal([]byte(`{"email":true,"inApp":null,"push":false}`), &s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactRequest_SettingsCompletos(t *testing.T) {
	body := `{"name":"Ana","email":"ana@example.com","settings":{
		"Vencimiento de cuota":{"email":true,"inApp":false,"push":false},
		"Cuota vencida":{"email":true,"inApp":true,"push":true},
		"Cambio de estado del pedido":{"email":false,"inApp":true,"push":false},
		"Documento nuevo":{"email":false,"inApp":false,"push":false},
		"Gasto nuevo":{"email":true,"inApp":true,"push":true}}}`

	var in dto.ContactRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	assert.Equal(t, entity.ChannelSettings{Email: true}, in.Settings[entity.EventInstallmentDueSoon])

	out, err := notifications.NewContactUseCase(&fakeContacts{}).Create(context.Background(), company, in)
	require.NoError(t, err)
	assert.Len(t, out.Settings, len(entity.EventTypes))
}

func TestContactUseCase_CrudPorEmpresa(t *testing.T) {
	repo := &fakeContacts{}
	uc := notifications.NewContactUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, company, dto.ContactRequest{Name: " Ana ", Email: "ANA@Example.com", Settings: entity.DefaultNotificationSettings()})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, "ana@example.com", created.Email)

	_, err = uc.Get(ctx, "otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := settingsOnly(entity.EventNewDocument, entity.ChannelSettings{InApp: true})
	updated, err := uc.Update(ctx, company, created.ID, dto.ContactRequest{Name: "Ana B", Email: "ana@example.com", Settings: s})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", updated.Name)
	assert.False(t, updated.Settings[entity.EventNewExpense].Any())

	list, err := uc.List(ctx, company)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, company, created.ID))
	list, err = uc.List(ctx, company)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPushUseCase_SubscribeUpsertPorEndpoint(t *testing.T) {
	repo := &fakeSubscriptions{}
	uc := notifications.NewPushUseCase(repo, &fakePush{enabled: true})
	in := dto.PushSubscriptionRequest{Endpoint: "https://fcm.googleapis.com/x"}
	in.Keys.P256dh = "p"
	in.Keys.Auth = "a"

	require.NoError(t, uc.Subscribe(context.Background(), company, "u-1", "Firefox", in))
	in.Keys.Auth = "b"
	require.NoError(t, uc.Subscribe(context.Background(), company, "u-1", "Firefox", in))

	require.Len(t, repo.items, 1)
	assert.Equal(t, "b", repo.items[0].Auth)
	assert.Equal(t, "Firefox", repo.items[0].UserAgent)
}

func TestPushUseCase_SubscribeSinClavesVAPID(t *testing.T) {
	uc := notifications.NewPushUseCase(&fakeSubscriptions{}, &fakePush{enabled: false})
	err := uc.Subscribe(context.Background(), company, "u-1", "", dto.PushSubscriptionRequest{Endpoint: "https://x"})
	assert.ErrorIs(t, err, domain.ErrChannelDisabled)
	assert.False(t, uc.VAPIDPublicKey().Enabled)
}

func TestPushUseCase_UnsubscribeSoloDeLaEmpresa(t *testing.T) {
	repo := &fakeSubscriptions{items: []*entity.PushSubscription{{Endpoint: "https://push/a", CompanyID: "c-2"}}}
	uc := notifications.NewPushUseCase(repo, &fakePush{enabled: true})

	err := uc.Unsubscribe(context.Background(), company, "https://push/a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, repo.items, 1)

	require.NoError(t, uc.Unsubscribe(context.Background(), "c-2", "https://push/a"))
	assert.Empty(t, repo.items)
}

func TestHistoryUseCase_ListYMarcarLeidas(t *testing.T) {
	repo := &fakeHistory{items: []*entity.Notification{
		{ID: "n1", CompanyID: company, UserID: "u-1", Title: "primera"},
		{ID: "n2", CompanyID: company, UserID: "u-1", Title: "segunda"},
		{ID: "n3", CompanyID: company, UserID: "u-2", Title: "de otro"},
	}}
	uc := notifications.NewHistoryUseCase(repo)
	ctx := context.Background()

	out, err := uc.List(ctx, company, "u-1", 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "segunda", out.Items[0].Title, "más recientes primero")
	assert.Equal(t, 2, out.Unread)

	require.NoError(t, uc.MarkRead(ctx, company, "n1"))
	res, err := uc.MarkAllRead(ctx, company, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Updated)
}

func TestPreferencesUseCase_DefaultsYGuardar(t *testing.T) {
	uc := notifications.NewPreferencesUseCase(&fakePrefs{}, 3)
	ctx := context.Background()

	got, err := uc.Get(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DaysBefore)
	assert.True(t, got.IsDefault)

	_, err = uc.Save(ctx, company, dto.AlertPreferencesRequest{DaysBefore: 120})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Save(ctx, company, dto.AlertPreferencesRequest{DaysBefore: 7})
	require.NoError(t, err)
	got, err = uc.Get(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, 7, got.DaysBefore)
	assert.False(t, got.IsDefault)
}
