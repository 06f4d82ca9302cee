package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/store"
)

// Stats reports how much of the domain's bank has been exposed.
func (s *QuizService) Stats(ctx context.Context, domain string) (questionbank.BankStats, error) {
	bank, err := s.banks.Load(ctx, domain)
	if err != nil {
		return questionbank.BankStats{}, err
	}

	st, err := s.store.StatsFor(ctx, domain)
	if err != nil {
		return questionbank.BankStats{}, err
	}

	return questionbank.NewBankStats(domain, bank.Len(), st.Tracked, st.SeenOnce, st.SeenTwice, st.Exhausted), nil
}

// QuestionExposure returns the exposure record of one question. Questions of
// the bank that were never graded report a zero count. IDs that are not in
// the bank yield store.ErrNotFound.
func (s *QuizService) QuestionExposure(ctx context.Context, domain, questionID string) (*store.Exposure, error) {
	bank, err := s.banks.Load(ctx, domain)
	if err != nil {
		return nil, err
	}
	if _, ok := bank.Index()[questionID]; !ok {
		return nil, fmt.Errorf("question %s in %s bank: %w", questionID, domain, store.ErrNotFound)
	}

	e, err := s.store.Exposure(ctx, questionID)
	if errors.Is(err, store.ErrNotFound) {
		return &store.Exposure{QuestionID: questionID, Domain: domain}, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
