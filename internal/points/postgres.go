package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the ledger in a single points table with an
// additive upsert per scoring event.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the points table if needed.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS points (
			user_id TEXT PRIMARY KEY,
			points BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_points_points ON points(points DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate points table: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT points FROM points WHERE user_id = $1`

	var total int64
	err := s.pool.QueryRow(ctx, query, userID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get points: %w", err)
	}
	return total, nil
}

// Add implements Store.
func (s *PostgresStore) Add(ctx context.Context, userID string, delta int64) (int64, error) {
	const query = `
		INSERT INTO points (user_id, points, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET points = points.points + EXCLUDED.points, updated_at = NOW()
		RETURNING points
	`

	var total int64
	if err := s.pool.QueryRow(ctx, query, userID, delta).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}
	return total, nil
}

// Top implements Store.
func (s *PostgresStore) Top(ctx context.Context, n int) ([]Entry, error) {
	const query = `
		SELECT user_id, points FROM points
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top points: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Points); err != nil {
			return nil, fmt.Errorf("failed to scan points row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
