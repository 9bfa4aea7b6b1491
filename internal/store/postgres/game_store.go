package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// GameStore implements domain.GameStore using PostgreSQL.
type GameStore struct {
	pool *pgxpool.Pool
}

// NewGameStore creates a new GameStore backed by the given connection pool.
func NewGameStore(pool *pgxpool.Pool) *GameStore {
	return &GameStore{pool: pool}
}

// UpsertBatch inserts or refreshes the day's slate. Kickoff times move when
// games get flexed, so conflicts update in place.
func (s *GameStore) UpsertBatch(ctx context.Context, games []domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const query = `
		INSERT INTO games (id, home, away, kickoff)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			home = EXCLUDED.home,
			away = EXCLUDED.away,
			kickoff = EXCLUDED.kickoff`

	for _, g := range games {
		batch.Queue(query, g.ID, g.Home, g.Away, g.Kickoff)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range games {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: upsert game batch item %d: %w", i, err)
		}
	}
	return nil
}

// ListByDate returns games kicking off within the calendar day containing the
// given time, in that time's location, earliest first.
func (s *GameStore) ListByDate(ctx context.Context, day time.Time) ([]domain.Game, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	rows, err := s.pool.Query(ctx,
		`SELECT id, home, away, kickoff FROM games
		 WHERE kickoff >= $1 AND kickoff < $2
		 ORDER BY kickoff ASC`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list games by date: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.Home, &g.Away, &g.Kickoff); err != nil {
			return nil, fmt.Errorf("postgres: scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate games: %w", err)
	}
	return games, nil
}
