package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS question_exposure (
    question_id TEXT PRIMARY KEY,
    domain TEXT NOT NULL,
    seen_count INTEGER NOT NULL DEFAULT 0,
    last_seen TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_exposure_domain ON question_exposure(domain);
`

// PostgresStore keeps exposure counters in PostgreSQL, for deployments where
// several server processes share one counter table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to connString, verifies the connection and creates the
// schema.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SeenCount(ctx context.Context, questionID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		"SELECT seen_count FROM question_exposure WHERE question_id = $1", questionID,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("seen count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) SeenCounts(ctx context.Context, domain string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT question_id, seen_count FROM question_exposure WHERE domain = $1", domain,
	)
	if err != nil {
		return nil, fmt.Errorf("seen counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("seen counts: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

const postgresUpsert = `
	INSERT INTO question_exposure (question_id, domain, seen_count, last_seen)
	VALUES ($1, $2, 1, $3)
	ON CONFLICT (question_id) DO UPDATE SET
		seen_count = question_exposure.seen_count + 1,
		last_seen = EXCLUDED.last_seen
`

func (s *PostgresStore) RecordExposure(ctx context.Context, questionID, domain string, at time.Time) error {
	if _, err := s.pool.Exec(ctx, postgresUpsert, questionID, domain, at.UTC()); err != nil {
		return fmt.Errorf("record exposure %s: %w", questionID, err)
	}
	return nil
}

// RecordExposures sends every upsert in one batch inside a transaction.
func (s *PostgresStore) RecordExposures(ctx context.Context, domain string, questionIDs []string, at time.Time) error {
	if len(questionIDs) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("record exposures: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, id := range questionIDs {
		batch.Queue(postgresUpsert, id, domain, at.UTC())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("record exposures: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("record exposures: commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) Exposure(ctx context.Context, questionID string) (*Exposure, error) {
	var e Exposure
	err := s.pool.QueryRow(ctx,
		"SELECT question_id, domain, seen_count, last_seen FROM question_exposure WHERE question_id = $1",
		questionID,
	).Scan(&e.QuestionID, &e.Domain, &e.SeenCount, &e.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("exposure: %w", err)
	}
	e.LastSeen = e.LastSeen.UTC()
	return &e, nil
}

func (s *PostgresStore) StatsFor(ctx context.Context, domain string) (ExposureStats, error) {
	var st ExposureStats
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE seen_count = 1),
			COUNT(*) FILTER (WHERE seen_count = 2),
			COUNT(*) FILTER (WHERE seen_count >= 3)
		FROM question_exposure
		WHERE domain = $1
	`, domain).Scan(&st.Tracked, &st.SeenOnce, &st.SeenTwice, &st.Exhausted)
	if err != nil {
		return ExposureStats{}, fmt.Errorf("stats for %s: %w", domain, err)
	}
	return st, nil
}
