package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// OddsCache implements domain.OddsCache using plain Redis strings. Raw odds
// payloads are cached so the preview and final windows of the same slate
// don't each burn API quota.
type OddsCache struct {
	rdb *redis.Client
}

// NewOddsCache creates an OddsCache backed by the given Client.
func NewOddsCache(c *Client) *OddsCache {
	return &OddsCache{rdb: c.Underlying()}
}

func snapshotKey(key string) string {
	return "odds:" + key
}

// SetSnapshot stores a raw odds payload under the key for the given TTL.
func (oc *OddsCache) SetSnapshot(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := oc.rdb.Set(ctx, snapshotKey(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set odds snapshot %s: %w", key, err)
	}
	return nil
}

// GetSnapshot retrieves a cached odds payload. It returns domain.ErrNotFound
// when the key does not exist or has expired.
func (oc *OddsCache) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	data, err := oc.rdb.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get odds snapshot %s: %w", key, err)
	}
	return data, nil
}

// Compile-time interface check.
var _ domain.OddsCache = (*OddsCache)(nil)
