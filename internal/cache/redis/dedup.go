package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// AlertDedup implements domain.AlertDedup using Redis SETNX. A pick alerted
// in the preview window is not re-announced in the final window unless its
// dedup key has expired.
type AlertDedup struct {
	rdb *redis.Client
}

// NewAlertDedup creates an AlertDedup backed by the given Client.
func NewAlertDedup(c *Client) *AlertDedup {
	return &AlertDedup{rdb: c.Underlying()}
}

func dedupKey(key string) string {
	return "alerted:" + key
}

// FirstSeen marks the key and reports whether this caller was first. It
// returns true exactly once per key within the TTL.
func (d *AlertDedup) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, dedupKey(key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: dedup %s: %w", key, err)
	}
	return ok, nil
}

// Compile-time interface check.
var _ domain.AlertDedup = (*AlertDedup)(nil)
