package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

// Cache is a byte store with per-key TTL. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New picks the store from config: "memory" (default) or "redis".
func New(ctx context.Context, config utils.CacheConfig, log *zap.Logger) (Cache, error) {
	switch config.Driver {
	case "", "memory":
		return NewMemory(time.Minute), nil
	case "redis":
		c, err := NewRedis(ctx, config)
		if err != nil {
			return nil, err
		}
		log.Info("Redis cache connected", zap.String("addr", config.RedisAddr), zap.Int("db", config.RedisDB))
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", config.Driver)
	}
}

// GetJSON decodes key into dst. ok is false on a miss.
func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
