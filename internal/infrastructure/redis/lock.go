package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/internal/domain"
)

var _ sweep.Locker = (*Locker)(nil)

// solo borra la clave si el token sigue siendo el nuestro
const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker lock distribuido con SET NX + token; evita dos barridos simultáneos de la misma empresa.
type Locker struct {
	client   goredis.Cmdable
	script   *goredis.Script
	prefix   string
	newToken func() string
}

// LockerOption ajusta el Locker.
type LockerOption func(*Locker)

// WithTokenFunc fija el generador de tokens (pruebas).
func WithTokenFunc(fn func() string) LockerOption {
	return func(l *Locker) {
		l.newToken = fn
	}
}

// NewLocker construye el lock. Las claves quedan como "pedidos:lock:<key>".
func NewLocker(client goredis.Cmdable, opts ...LockerOption) *Locker {
	l := &Locker{
		client:   client,
		script:   goredis.NewScript(lockReleaseScript),
		prefix:   "pedidos:lock:",
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire toma el lock o devuelve domain.ErrSweepInProgress si otro proceso lo tiene.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if key == "" {
		return nil, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("lock ttl must be positive")
	}
	fullKey := l.prefix + key
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, domain.ErrSweepInProgress
	}
	release := func(ctx context.Context) error {
		return l.script.Run(ctx, l.client, []string{fullKey}, token).Err()
	}
	return release, nil
}
