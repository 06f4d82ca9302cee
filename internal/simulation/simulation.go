// simulation/simulation.go
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/service"
	"github.com/jeopardy-trainer/backend/internal/worker"
)

// Config describes a simulated crowd of players.
type Config struct {
	Domain      string
	Players     int
	Rounds      int // sessions played by each player
	SessionSize int
	Workers     int
	Seed        int64
}

// PlayerResult is what one player did over all of its rounds.
type PlayerResult struct {
	Player   string
	Sessions int
	Graded   int
	Correct  int
	Err      error
}

// Report summarizes a simulation run.
type Report struct {
	Players  []PlayerResult
	Sessions int
	Graded   int
	Correct  int
	Stats    questionbank.BankStats
}

// Run plays cfg.Rounds sessions for each of cfg.Players concurrently on a
// worker pool. Players guess: a random option for multiple-choice questions,
// an empty answer otherwise. Every graded answer is recorded by the service,
// so Report.Graded equals the number of exposures written.
func Run(ctx context.Context, quiz *service.QuizService, cfg Config) (*Report, error) {
	if cfg.Players < 1 || cfg.Rounds < 1 {
		return nil, fmt.Errorf("simulation: players and rounds must be positive")
	}

	jobs := make(map[string]worker.Job[PlayerResult], cfg.Players)
	for i := 0; i < cfg.Players; i++ {
		name := fmt.Sprintf("player-%02d", i+1)
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		jobs[name] = func() PlayerResult {
			return play(ctx, quiz, cfg, name, rng)
		}
	}

	results := worker.Run(cfg.Workers, jobs)

	report := &Report{}
	var errs []error
	for i := 0; i < cfg.Players; i++ {
		r := results[fmt.Sprintf("player-%02d", i+1)]
		report.Players = append(report.Players, r)
		report.Sessions += r.Sessions
		report.Graded += r.Graded
		report.Correct += r.Correct
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Player, r.Err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return report, err
	}

	stats, err := quiz.Stats(ctx, cfg.Domain)
	if err != nil {
		return report, err
	}
	report.Stats = stats
	return report, nil
}

func play(ctx context.Context, quiz *service.QuizService, cfg Config, name string, rng *rand.Rand) PlayerResult {
	result := PlayerResult{Player: name}
	sessionCfg := practicesession.DefaultConfig().WithCount(cfg.SessionSize)

	for round := 0; round < cfg.Rounds; round++ {
		session, err := quiz.StartSession(ctx, cfg.Domain, sessionCfg)
		if err != nil {
			result.Err = err
			return result
		}
		result.Sessions++

		answers := make([]service.Answer, len(session.Questions))
		for i, q := range session.Questions {
			answers[i] = service.Answer{QuestionID: q.ID, UserAnswer: guess(q, rng)}
		}

		graded, err := quiz.SubmitSession(ctx, cfg.Domain, answers)
		if err != nil {
			result.Err = err
			return result
		}
		result.Graded += graded.Total
		result.Correct += graded.Score
	}
	return result
}

func guess(q questionbank.ClientQuestion, rng *rand.Rand) string {
	if len(q.Options) == 0 {
		return ""
	}
	return q.Options[rng.Intn(len(q.Options))]
}
