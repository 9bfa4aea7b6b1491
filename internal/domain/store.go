package domain

import (
	"context"
	"time"
)

// PickStore persists surfaced picks for audit history.
type PickStore interface {
	Insert(ctx context.Context, p Pick) error
	InsertBatch(ctx context.Context, picks []Pick) error
	ListRecent(ctx context.Context, limit int) ([]Pick, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// GameStore persists the day's slate of games.
type GameStore interface {
	UpsertBatch(ctx context.Context, games []Game) error
	ListByDate(ctx context.Context, day time.Time) ([]Game, error)
}
