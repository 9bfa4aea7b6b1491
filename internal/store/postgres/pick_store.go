package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// PickStore implements domain.PickStore using PostgreSQL.
type PickStore struct {
	pool *pgxpool.Pool
}

// NewPickStore creates a new PickStore backed by the given connection pool.
func NewPickStore(pool *pgxpool.Pool) *PickStore {
	return &PickStore{pool: pool}
}

const pickSelectCols = `id, game_id, market, label, slot, book, fair_american,
	fair_prob, edge_points, ev, stake, run_window, is_backup, created_at`

const pickInsertQuery = `
	INSERT INTO picks (
		id, game_id, market, label, slot, book, fair_american,
		fair_prob, edge_points, ev, stake, run_window, is_backup, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13, $14
	) ON CONFLICT (id) DO NOTHING`

func pickArgs(p domain.Pick) []any {
	return []any{
		p.ID, p.GameID, p.Market, p.Label, string(p.Slot), p.Book, p.FairAmerican,
		p.FairProb, p.EdgePoints, p.EV, string(p.Stake), p.Window, p.IsBackup, p.CreatedAt,
	}
}

func scanPickRows(rows pgx.Rows) ([]domain.Pick, error) {
	var picks []domain.Pick
	for rows.Next() {
		var p domain.Pick
		var slot, stake string
		if err := rows.Scan(
			&p.ID, &p.GameID, &p.Market, &p.Label, &slot, &p.Book, &p.FairAmerican,
			&p.FairProb, &p.EdgePoints, &p.EV, &stake, &p.Window, &p.IsBackup, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Slot = domain.Slot(slot)
		p.Stake = domain.StakeLabel(stake)
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// Insert stores one pick.
func (s *PickStore) Insert(ctx context.Context, p domain.Pick) error {
	if _, err := s.pool.Exec(ctx, pickInsertQuery, pickArgs(p)...); err != nil {
		return fmt.Errorf("postgres: insert pick: %w", err)
	}
	return nil
}

// InsertBatch stores multiple picks efficiently using pgx Batch. Replayed
// picks (same ID) are silently skipped via ON CONFLICT DO NOTHING.
func (s *PickStore) InsertBatch(ctx context.Context, picks []domain.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range picks {
		batch.Queue(pickInsertQuery, pickArgs(p)...)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range picks {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: insert pick batch item %d: %w", i, err)
		}
	}
	return nil
}

// ListRecent returns the most recently surfaced picks, newest first.
func (s *PickStore) ListRecent(ctx context.Context, limit int) ([]domain.Pick, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + pickSelectCols + ` FROM picks ORDER BY created_at DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list recent picks: %w", err)
	}
	defer rows.Close()

	picks, err := scanPickRows(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan recent picks: %w", err)
	}
	return picks, nil
}

// DeleteOlderThan deletes picks created before the cutoff. Returns the number
// deleted.
func (s *PickStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM picks WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete old picks: %w", err)
	}
	return tag.RowsAffected(), nil
}
