// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS question_exposure (
    question_id TEXT PRIMARY KEY,
    domain TEXT NOT NULL,
    seen_count INTEGER NOT NULL DEFAULT 0,
    last_seen TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_exposure_domain ON question_exposure(domain);
`

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and creates if needed) the SQLite database at path.
// Pass ":memory:" for a throwaway database.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time; an in-memory database also only exists on a
	// single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// sqliteDSN adds the pragmas the store relies on to a plain file path.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SeenCount(ctx context.Context, questionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT seen_count FROM question_exposure WHERE question_id = ?", questionID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("seen count: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) SeenCounts(ctx context.Context, domain string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question_id, seen_count FROM question_exposure WHERE domain = ?", domain,
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

const sqliteUpsert = `
	INSERT INTO question_exposure (question_id, domain, seen_count, last_seen)
	VALUES (?, ?, 1, ?)
	ON CONFLICT(question_id) DO UPDATE SET
		seen_count = seen_count + 1,
		last_seen = excluded.last_seen
`

func (s *SQLiteStore) RecordExposure(ctx context.Context, questionID, domain string, at time.Time) error {
	if _, err := s.db.ExecContext(ctx, sqliteUpsert, questionID, domain, formatTime(at)); err != nil {
		return fmt.Errorf("record exposure %s: %w", questionID, err)
	}
	return nil
}

func (s *SQLiteStore) RecordExposures(ctx context.Context, domain string, questionIDs []string, at time.Time) error {
	if len(questionIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record exposures: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("record exposures: prepare: %w", err)
	}
	defer stmt.Close()

	lastSeen := formatTime(at)
	for _, id := range questionIDs {
		if _, err := stmt.ExecContext(ctx, id, domain, lastSeen); err != nil {
			return fmt.Errorf("record exposure %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record exposures: commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Exposure(ctx context.Context, questionID string) (*Exposure, error) {
	var e Exposure
	var lastSeen string
	err := s.db.QueryRowContext(ctx,
		"SELECT question_id, domain, seen_count, last_seen FROM question_exposure WHERE question_id = ?",
		questionID,
	).Scan(&e.QuestionID, &e.Domain, &e.SeenCount, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("exposure: %w", err)
	}

	e.LastSeen, err = time.Parse(time.RFC3339Nano, lastSeen)
	if err != nil {
		return nil, fmt.Errorf("exposure %s: bad last_seen %q: %w", questionID, lastSeen, err)
	}
	return &e, nil
}

func (s *SQLiteStore) StatsFor(ctx context.Context, domain string) (ExposureStats, error) {
	var st ExposureStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN seen_count = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN seen_count = 2 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN seen_count >= 3 THEN 1 ELSE 0 END), 0)
		FROM question_exposure
		WHERE domain = ?
	`, domain).Scan(&st.Tracked, &st.SeenOnce, &st.SeenTwice, &st.Exhausted)
	if err != nil {
		return ExposureStats{}, fmt.Errorf("stats for %s: %w", domain, err)
	}
	return st, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
