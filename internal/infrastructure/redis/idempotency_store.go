// Package redis implementa el almacén de claves de idempotencia sobre go-redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-movimientos/pkg/config"
)

const keyNamespace = "inv:idempotency"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// IdempotencyStore guarda respuestas por clave de idempotencia.
type IdempotencyStore struct {
	store cmdable
	raw   *redis.Client
}

// New conecta con Redis a partir de REDIS_URL y verifica la conexión.
func New(ctx context.Context, cfg config.RedisConfig) (*IdempotencyStore, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &IdempotencyStore{store: raw, raw: raw}, nil
}

// Key construye la clave con espacio de nombres.
func (s *IdempotencyStore) Key(scope, id string) string {
	return keyNamespace + ":" + scope + ":" + id
}

// Get devuelve el valor guardado o "" si la clave no existe.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// Reserve guarda value solo si la clave no existe.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.store.SetNX(ctx, key, value, ttl).Result()
}

// Save sobrescribe el valor de la clave.
func (s *IdempotencyStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.store.Set(ctx, key, value, ttl).Err()
}

// Release elimina la clave (p. ej. cuando el request falló y puede reintentarse).
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.store.Del(ctx, key).Err()
}

// Ping verifica la conexión.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

// Close cierra el cliente subyacente.
func (s *IdempotencyStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
