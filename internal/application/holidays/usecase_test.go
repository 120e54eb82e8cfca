package holidays_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

type fakeClient struct {
	calls   int
	country string
	err     error
}

func (f *fakeClient) PublicHolidays(_ context.Context, year int, country string) ([]entity.Holiday, error) {
	f.calls++
	f.country = country
	if f.err != nil {
		return nil, f.err
	}
	return []entity.Holiday{
		{Date: time.Date(year, 9, 18, 0, 0, 0, 0, time.UTC), Name: "Fiestas Patrias", CountryCode: country},
	}, nil
}

type memCache struct {
	data   map[string][]byte
	getErr error
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func TestList_UsaCacheEnLaSegundaConsulta(t *testing.T) {
	client := &fakeClient{}
	cache := &memCache{data: map[string][]byte{}}
	uc := holidays.NewUseCase(client, cache, time.Hour, "CL", logger.Nop())

	first, err := uc.List(context.Background(), 2024, "")
	require.NoError(t, err)
	second, err := uc.List(context.Background(), 2024, "cl")
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "CL", client.country)
	assert.Equal(t, first, second)
	assert.Equal(t, "2024-09-18", first[0].Date)
	assert.Contains(t, cache.data, "holidays:2024:CL")
}

func TestList_CacheCaidaConsultaLaAPI(t *testing.T) {
	client := &fakeClient{}
	uc := holidays.NewUseCase(client, &memCache{data: map[string][]byte{}, getErr: errors.New("redis down")}, time.Hour, "CL", logger.Nop())

	out, err := uc.List(context.Background(), 2024, "AR")
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "AR", out[0].CountryCode)
}

func TestList_EntradaInvalida(t *testing.T) {
	uc := holidays.NewUseCase(&fakeClient{}, nil, time.Hour, "CL", logger.Nop())

	_, err := uc.List(context.Background(), 1200, "CL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(context.Background(), 2024, "CHL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_ErrorDeLaAPI(t *testing.T) {
	uc := holidays.NewUseCase(&fakeClient{err: errors.New("503")}, nil, time.Hour, "CL", logger.Nop())
	_, err := uc.List(context.Background(), 2024, "CL")
	assert.Error(t, err)
}
