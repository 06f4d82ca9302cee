//go:build cucumber

package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cucumber/godog"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/grader"
	"github.com/jeopardy-trainer/backend/internal/service"
	"github.com/jeopardy-trainer/backend/internal/store"
)

// TestQuizScenarios runs the quiz session feature scenarios.
func TestQuizScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("..", "..", "features", "quiz.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for the quiz feature scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the go bank$`, state.givenTheGoBank)
	ctx.Step(`^question "([^"]+)" was seen (\d+) times?$`, state.givenQuestionWasSeen)
	ctx.Step(`^I start a go session of (\d+) questions$`, state.whenIStartASession)
	ctx.Step(`^I answer "([^"]*)" to "([^"]+)"$`, state.whenIAnswer)
	ctx.Step(`^I submit the go session$`, state.whenISubmit)
	ctx.Step(`^I answer "([^"]*)" to "([^"]+)" and submit (\d+) times$`, state.whenIAnswerAndSubmitRepeatedly)
	ctx.Step(`^the session holds "([^"]+)"$`, state.thenTheSessionHolds)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, state.thenTheScoreIs)
	ctx.Step(`^the percentage is ([\d.]+)$`, state.thenThePercentageIs)
	ctx.Step(`^question "([^"]+)" has been seen (\d+) times?$`, state.thenQuestionHasBeenSeen)
	ctx.Step(`^the go stats report (\d+) exhausted$`, state.thenStatsReportExhausted)
	ctx.Step(`^starting a go session of (\d+) questions does not offer "([^"]+)"$`, state.thenSessionDoesNotOffer)
}

// quizScenarioState holds scenario state for quiz feature tests.
type quizScenarioState struct {
	svc     *service.QuizService
	store   *store.MemoryStore
	session *practicesession.PracticeSession
	answers []service.Answer
	result  *service.SessionResult
}

func (s *quizScenarioState) reset() {
	*s = quizScenarioState{}
}

func (s *quizScenarioState) givenTheGoBank() error {
	s.store = store.NewMemory()
	s.svc = service.NewQuizService(
		questionbank.NewLoader(fstest.MapFS{"gopardy-questions.md": {Data: []byte(goBank)}}, questionbank.DefaultCatalog()),
		s.store,
		practicesession.NewSelector(nil),
		grader.ExactMatch{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		service.WithClock(func() time.Time { return fixedNow }),
	)
	return nil
}

func (s *quizScenarioState) givenQuestionWasSeen(id string, times int) error {
	for i := 0; i < times; i++ {
		if err := s.store.RecordExposure(context.Background(), id, "go", fixedNow); err != nil {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) whenIStartASession(count int) error {
	session, err := s.svc.StartSession(context.Background(), "go", practicesession.DefaultConfig().WithCount(count))
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

func (s *quizScenarioState) whenIAnswer(answer, id string) error {
	s.answers = append(s.answers, service.Answer{QuestionID: id, UserAnswer: answer})
	return nil
}

func (s *quizScenarioState) whenISubmit() error {
	result, err := s.svc.SubmitSession(context.Background(), "go", s.answers)
	if err != nil {
		return err
	}
	s.result = result
	s.answers = nil
	return nil
}

func (s *quizScenarioState) whenIAnswerAndSubmitRepeatedly(answer, id string, times int) error {
	for i := 0; i < times; i++ {
		if err := s.whenIAnswer(answer, id); err != nil {
			return err
		}
		if err := s.whenISubmit(); err != nil {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) thenTheSessionHolds(list string) error {
	want := strings.Split(list, ", ")
	got := make([]string, len(s.session.Questions))
	for i, q := range s.session.Questions {
		got[i] = q.ID
	}
	if !slices.Equal(want, got) {
		return fmt.Errorf("expected session %v, got %v", want, got)
	}
	return nil
}

func (s *quizScenarioState) thenTheScoreIs(score, total int) error {
	if s.result.Score != score || s.result.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, s.result.Score, s.result.Total)
	}
	return nil
}

func (s *quizScenarioState) thenThePercentageIs(pct float64) error {
	if s.result.Percentage != pct {
		return fmt.Errorf("expected percentage %.1f, got %.1f", pct, s.result.Percentage)
	}
	return nil
}

func (s *quizScenarioState) thenQuestionHasBeenSeen(id string, times int) error {
	n, err := s.store.SeenCount(context.Background(), id)
	if err != nil {
		return err
	}
	if n != times {
		return fmt.Errorf("expected %s seen %d times, got %d", id, times, n)
	}
	return nil
}

func (s *quizScenarioState) thenStatsReportExhausted(n int) error {
	stats, err := s.svc.Stats(context.Background(), "go")
	if err != nil {
		return err
	}
	if stats.Exhausted != n {
		return fmt.Errorf("expected %d exhausted, got %d", n, stats.Exhausted)
	}
	return nil
}

func (s *quizScenarioState) thenSessionDoesNotOffer(count int, id string) error {
	if err := s.whenIStartASession(count); err != nil {
		return err
	}
	for _, q := range s.session.Questions {
		if q.ID == id {
			return fmt.Errorf("session offered exhausted question %s", id)
		}
	}
	return nil
}
