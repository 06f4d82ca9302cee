// internal/service/service.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/grader"
	"github.com/jeopardy-trainer/backend/internal/store"
)

// ErrInvalidArgument marks requests the service refuses to act on.
var ErrInvalidArgument = errors.New("invalid argument")

// BankLoader provides freshly parsed question banks.
type BankLoader interface {
	Load(ctx context.Context, domain string) (*questionbank.QuestionBank, error)
	Catalog() questionbank.Catalog
}

// QuizService runs the quiz workflow: it builds sessions from a bank and the
// exposure counters, grades submissions and records exposures.
// All dependencies are injected so tests can swap the store, the random
// source and the clock.
type QuizService struct {
	banks    BankLoader
	store    store.ExposureStore
	selector *practicesession.Selector
	grader   grader.Grader
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithClock overrides the clock used for exposure timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) {
		s.now = now
	}
}

// NewQuizService creates a QuizService.
func NewQuizService(
	banks BankLoader,
	s store.ExposureStore,
	selector *practicesession.Selector,
	g grader.Grader,
	logger *slog.Logger,
	opts ...Option,
) *QuizService {
	svc := &QuizService{
		banks:    banks,
		store:    s,
		selector: selector,
		grader:   g,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Domains returns the domains that can be quizzed.
func (s *QuizService) Domains() []string {
	return s.banks.Catalog().Domains()
}

// HasDomain reports whether domain is configured.
func (s *QuizService) HasDomain(domain string) bool {
	return s.banks.Catalog().Has(domain)
}
