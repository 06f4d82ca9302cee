package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownDriver = errors.New("unknown database driver")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Exposure is the stored exposure record of a single question.
type Exposure struct {
	QuestionID string
	Domain     string
	SeenCount  int
	LastSeen   time.Time
}

// ExposureStats aggregates the tracked rows of one domain.
type ExposureStats struct {
	Tracked   int
	SeenOnce  int
	SeenTwice int
	Exhausted int // seen three times or more
}

// ExposureStore persists how often each question has been graded.
// Implementations must make RecordExposure a single atomic upsert so that
// concurrent submissions never lose an increment.
type ExposureStore interface {
	// SeenCount returns 0 for questions that were never graded.
	SeenCount(ctx context.Context, questionID string) (int, error)

	// SeenCounts returns the counts of every tracked question in domain.
	SeenCounts(ctx context.Context, domain string) (map[string]int, error)

	// RecordExposure inserts the question with a count of 1 or increments it.
	RecordExposure(ctx context.Context, questionID, domain string, at time.Time) error

	// RecordExposures records one exposure per entry of questionIDs, all in
	// domain, as a single unit: either every increment is stored or none is.
	// Repeated IDs are incremented once per occurrence.
	RecordExposures(ctx context.Context, domain string, questionIDs []string, at time.Time) error

	// Exposure returns ErrNotFound for questions that were never graded.
	Exposure(ctx context.Context, questionID string) (*Exposure, error)

	StatsFor(ctx context.Context, domain string) (ExposureStats, error)

	Close() error
}

// Open connects to the exposure store selected by driver.
func Open(ctx context.Context, driver, dsn string) (ExposureStore, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLite(dsn)
	case DriverPostgres:
		return NewPostgres(ctx, dsn)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
