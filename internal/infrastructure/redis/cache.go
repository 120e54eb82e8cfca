package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pedidos-api/internal/application/holidays"
)

var _ holidays.Cache = (*Cache)(nil)

// Cache caché de bytes con TTL y prefijo de clave.
type Cache struct {
	client goredis.Cmdable
	prefix string
}

// NewCache construye la caché; las claves quedan como "pedidos:cache:<key>".
func NewCache(client goredis.Cmdable) *Cache {
	return &Cache{client: client, prefix: "pedidos:cache:"}
}

// Get (nil, false, nil) si la clave no existe.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set guarda el valor con TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
