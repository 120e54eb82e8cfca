package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain"
)

func fixedToken() string { return "tok-1" }

func TestLocker_AcquireYRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, WithTokenFunc(fixedToken))

	mock.ExpectSetNX("pedidos:lock:sweep:c-1", "tok-1", 5*time.Minute).SetVal(true)
	hash := goredis.NewScript(lockReleaseScript).Hash()
	mock.ExpectEvalSha(hash, []string{"pedidos:lock:sweep:c-1"}, "tok-1").SetVal(int64(1))

	release, err := locker.Acquire(context.Background(), "sweep:c-1", 5*time.Minute)
	require.NoError(t, err)
	require.NoError(t, release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_Tomado(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, WithTokenFunc(fixedToken))

	mock.ExpectSetNX("pedidos:lock:sweep:c-1", "tok-1", time.Minute).SetVal(false)

	_, err := locker.Acquire(context.Background(), "sweep:c-1", time.Minute)
	assert.ErrorIs(t, err, domain.ErrSweepInProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_ErrorDeRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, WithTokenFunc(fixedToken))

	mock.ExpectSetNX("pedidos:lock:sweep:c-1", "tok-1", time.Minute).SetErr(errors.New("conexión rechazada"))

	_, err := locker.Acquire(context.Background(), "sweep:c-1", time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSweepInProgress)

	_, err = locker.Acquire(context.Background(), "sweep:c-1", 0)
	assert.Error(t, err)
}

func TestCache_GetSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db)
	ctx := context.Background()

	mock.ExpectGet("pedidos:cache:holidays:2024:CL").RedisNil()
	mock.ExpectSet("pedidos:cache:holidays:2024:CL", []byte(`[]`), 24*time.Hour).SetVal("OK")
	mock.ExpectGet("pedidos:cache:holidays:2024:CL").SetVal(`[]`)

	_, ok, err := cache.Get(ctx, "holidays:2024:CL")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "holidays:2024:CL", []byte(`[]`), 24*time.Hour))

	val, ok, err := cache.Get(ctx, "holidays:2024:CL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(val))
	assert.NoError(t, mock.ExpectationsWereMet())
}
