package domain

import (
	"context"
	"time"
)

// OddsCache stores raw odds payloads so back-to-back runs inside one window
// don't burn API quota.
type OddsCache interface {
	SetSnapshot(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	GetSnapshot(ctx context.Context, key string) ([]byte, error)
}

// AlertDedup remembers which picks have already been announced. FirstSeen
// returns true exactly once per key within the TTL.
type AlertDedup interface {
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RunLock serializes full evaluation runs so an overlapping trigger cannot
// double-send alerts.
type RunLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// BlobWriter uploads a payload to object storage under the given path.
type BlobWriter interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
}
