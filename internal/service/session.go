package service

import (
	"context"
	"fmt"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
)

// StartSession selects up to config.Count questions of domain, least exposed
// first. A bank with fewer eligible questions yields a shorter session.
func (s *QuizService) StartSession(ctx context.Context, domain string, config practicesession.SessionConfig) (*practicesession.PracticeSession, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	bank, err := s.banks.Load(ctx, domain)
	if err != nil {
		return nil, err
	}

	seen, err := s.store.SeenCounts(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("load exposure counts: %w", err)
	}

	selected := s.selector.Select(bank.Questions, seen, config.Count)
	session := practicesession.New(domain, selected)

	s.logger.Info("session started",
		"domain", domain,
		"requested", config.Count,
		"selected", session.Count(),
		"bank_size", bank.Len(),
	)
	return session, nil
}
