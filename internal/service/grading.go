// internal/service/grading.go
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Answer is one submitted answer.
type Answer struct {
	QuestionID string
	UserAnswer string
}

// GradedResult is the outcome for one answered question.
type GradedResult struct {
	QuestionID    string
	Question      string
	Type          string
	Options       []string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	Explanation   string
}

// SessionResult is the graded submission. It is not persisted.
type SessionResult struct {
	Score      int
	Total      int
	Percentage float64
	Results    []GradedResult
}

// SubmitSession grades answers against a freshly parsed bank and records an
// exposure for every graded question, right or wrong. Exposures are written in
// one batch after grading, so a store failure leaves no partial submission.
// Answers for question IDs that are not in the bank are skipped and do not
// count toward the total.
func (s *QuizService) SubmitSession(ctx context.Context, domain string, answers []Answer) (*SessionResult, error) {
	bank, err := s.banks.Load(ctx, domain)
	if err != nil {
		return nil, err
	}
	index := bank.Index()

	result := &SessionResult{Results: []GradedResult{}}
	graded := make([]string, 0, len(answers))
	skipped := 0

	for _, a := range answers {
		q, ok := index[a.QuestionID]
		if !ok {
			skipped++
			continue
		}

		correct := s.grader.Grade(q.Answer, a.UserAnswer)
		if correct {
			result.Score++
		}

		result.Results = append(result.Results, GradedResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			Type:          q.Type,
			Options:       q.Options,
			UserAnswer:    strings.TrimSpace(a.UserAnswer),
			CorrectAnswer: strings.TrimSpace(q.Answer),
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
		graded = append(graded, q.ID)
	}

	if err := s.store.RecordExposures(ctx, domain, graded, s.now()); err != nil {
		return nil, fmt.Errorf("record %d exposures: %w", len(graded), err)
	}

	result.Total = len(result.Results)
	result.Percentage = percentage(result.Score, result.Total)

	s.logger.Info("session graded",
		"domain", domain,
		"score", result.Score,
		"total", result.Total,
		"skipped", skipped,
	)
	return result, nil
}

// percentage returns score/total as a percentage rounded half to even at one
// decimal, or 0 when nothing was graded.
func percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(score)/float64(total)*1000) / 10
}
