package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/grader"
	"github.com/jeopardy-trainer/backend/internal/service"
	"github.com/jeopardy-trainer/backend/internal/store"
)

const goBank = `# Gopardy

## Q001 [basic] [multiple-choice]
**Question:** Capital of France?
**Options:**
Paris
Rome
**Answer:** paris
**Explanation:** It is Paris.
---

## Q002 [basic] [fill-blank]
**Question:** 2 + 2 = ?
**Answer:** 4
---

## Q003
**Question:** Zero value of an int?
**Answer:** 0
---

## Q004
**Question:** Keyword for a goroutine?
**Answer:** go
---

## Q005
**Question:** Built-in to close a channel?
**Answer:** close
`

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *service.QuizService
	store *store.MemoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fsys := fstest.MapFS{
		"gopardy-questions.md":  {Data: []byte(goBank)},
		"jeolinux-questions.md": {Data: []byte("# empty bank\n")},
	}
	mem := store.NewMemory()
	svc := service.NewQuizService(
		questionbank.NewLoader(fsys, questionbank.DefaultCatalog()),
		mem,
		practicesession.NewSelector(nil),
		grader.ExactMatch{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		service.WithClock(func() time.Time { return fixedNow }),
	)
	return fixture{svc: svc, store: mem}
}

func (f fixture) expose(t *testing.T, id string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		require.NoError(t, f.store.RecordExposure(context.Background(), id, "go", fixedNow))
	}
}

func sessionIDs(s *practicesession.PracticeSession) []string {
	out := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = q.ID
	}
	return out
}

func TestStartSession_PrefersLeastExposed(t *testing.T) {
	f := newFixture(t)
	f.expose(t, "go-Q002", 1)
	f.expose(t, "go-Q003", 2)
	f.expose(t, "go-Q005", 3)

	session, err := f.svc.StartSession(context.Background(), "go", practicesession.DefaultConfig().WithCount(3))
	require.NoError(t, err)

	assert.Equal(t, "go", session.Domain)
	assert.Equal(t, []string{"go-Q001", "go-Q004", "go-Q002"}, sessionIDs(session))
}

func TestStartSession_ShorterThanRequested(t *testing.T) {
	f := newFixture(t)
	f.expose(t, "go-Q001", 3)
	f.expose(t, "go-Q002", 3)

	session, err := f.svc.StartSession(context.Background(), "go", practicesession.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, session.Count())
}

func TestStartSession_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.StartSession(ctx, "python", practicesession.DefaultConfig())
	assert.True(t, errors.Is(err, questionbank.ErrUnknownDomain))

	_, err = f.svc.StartSession(ctx, "k8s", practicesession.DefaultConfig())
	assert.True(t, errors.Is(err, questionbank.ErrBankNotFound))

	_, err = f.svc.StartSession(ctx, "go", practicesession.DefaultConfig().WithCount(-1))
	assert.True(t, errors.Is(err, service.ErrInvalidArgument))
}

func TestSubmitSession_GradesAndRecordsExposure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.SubmitSession(ctx, "go", []service.Answer{
		{QuestionID: "go-Q001", UserAnswer: " Paris "},
		{QuestionID: "go-Q002", UserAnswer: "5"},
		{QuestionID: "go-Q999", UserAnswer: "ghost"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 50.0, result.Percentage)
	require.Len(t, result.Results, 2)

	first := result.Results[0]
	assert.Equal(t, service.GradedResult{
		QuestionID:    "go-Q001",
		Question:      "Capital of France?",
		Type:          "multiple-choice",
		Options:       []string{"Paris", "Rome"},
		UserAnswer:    "Paris",
		CorrectAnswer: "paris",
		IsCorrect:     true,
		Explanation:   "It is Paris.",
	}, first)
	assert.False(t, result.Results[1].IsCorrect)

	// Wrong answers are recorded too; unknown ids are not.
	for _, id := range []string{"go-Q001", "go-Q002"} {
		e, err := f.store.Exposure(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, e.SeenCount)
		assert.Equal(t, fixedNow, e.LastSeen)
	}
	_, err = f.store.Exposure(ctx, "go-Q999")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSubmitSession_Empty(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.SubmitSession(context.Background(), "go", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0.0, result.Percentage)
	assert.NotNil(t, result.Results)
}

func TestSubmitSession_OnlyUnknownIDs(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.SubmitSession(context.Background(), "go", []service.Answer{
		{QuestionID: "k8s-Q001", UserAnswer: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Empty(t, result.Results)
}

func TestSubmitSession_PercentageRounding(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.SubmitSession(context.Background(), "go", []service.Answer{
		{QuestionID: "go-Q001", UserAnswer: "paris"},
		{QuestionID: "go-Q002", UserAnswer: "wrong"},
		{QuestionID: "go-Q003", UserAnswer: "wrong"},
	})
	require.NoError(t, err)
	assert.Equal(t, 33.3, result.Percentage)
}

func TestSubmitSession_PercentageTiesRoundToEven(t *testing.T) {
	tests := []struct {
		correct int
		want    float64
	}{
		{1, 6.2},
		{3, 18.8},
		{5, 31.2},
		{7, 43.8},
	}

	for _, tt := range tests {
		f := newFixture(t)

		answers := make([]service.Answer, 16)
		for i := range answers {
			if i < tt.correct {
				answers[i] = service.Answer{QuestionID: "go-Q001", UserAnswer: "paris"}
			} else {
				answers[i] = service.Answer{QuestionID: "go-Q002", UserAnswer: "wrong"}
			}
		}

		result, err := f.svc.SubmitSession(context.Background(), "go", answers)
		require.NoError(t, err)
		assert.Equal(t, 16, result.Total)
		assert.Equal(t, tt.want, result.Percentage, "%d of 16", tt.correct)
	}
}

func TestSubmitSession_ThenExhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.SubmitSession(ctx, "go", []service.Answer{{QuestionID: "go-Q004", UserAnswer: "go"}})
		require.NoError(t, err)
	}

	stats, err := f.svc.Stats(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Exhausted)

	session, err := f.svc.StartSession(ctx, "go", practicesession.DefaultConfig())
	require.NoError(t, err)
	assert.NotContains(t, sessionIDs(session), "go-Q004")
}

type failingStore struct {
	*store.MemoryStore
}

func (failingStore) RecordExposures(context.Context, string, []string, time.Time) error {
	return errors.New("disk full")
}

func TestSubmitSession_StoreErrorSurfaces(t *testing.T) {
	fsys := fstest.MapFS{"gopardy-questions.md": {Data: []byte(goBank)}}
	svc := service.NewQuizService(
		questionbank.NewLoader(fsys, questionbank.DefaultCatalog()),
		failingStore{store.NewMemory()},
		practicesession.NewSelector(nil),
		grader.ExactMatch{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := svc.SubmitSession(context.Background(), "go", []service.Answer{{QuestionID: "go-Q001", UserAnswer: "paris"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

// recordingStore captures the batches handed to the store.
type recordingStore struct {
	*store.MemoryStore
	batches [][]string
}

func (r *recordingStore) RecordExposures(ctx context.Context, domain string, ids []string, at time.Time) error {
	r.batches = append(r.batches, append([]string(nil), ids...))
	return r.MemoryStore.RecordExposures(ctx, domain, ids, at)
}

func TestSubmitSession_RecordsOneBatch(t *testing.T) {
	fsys := fstest.MapFS{"gopardy-questions.md": {Data: []byte(goBank)}}
	rec := &recordingStore{MemoryStore: store.NewMemory()}
	svc := service.NewQuizService(
		questionbank.NewLoader(fsys, questionbank.DefaultCatalog()),
		rec,
		practicesession.NewSelector(nil),
		grader.ExactMatch{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := svc.SubmitSession(context.Background(), "go", []service.Answer{
		{QuestionID: "go-Q001", UserAnswer: "paris"},
		{QuestionID: "go-Q999", UserAnswer: "ghost"},
		{QuestionID: "go-Q002", UserAnswer: "4"},
		{QuestionID: "go-Q001", UserAnswer: "rome"},
	})
	require.NoError(t, err)

	require.Len(t, rec.batches, 1)
	assert.Equal(t, []string{"go-Q001", "go-Q002", "go-Q001"}, rec.batches[0])

	n, err := rec.SeenCount(context.Background(), "go-Q001")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.svc.Stats(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, questionbank.BankStats{Domain: "go", TotalQuestions: 5, Unseen: 5}, stats)

	f.expose(t, "go-Q001", 1)
	f.expose(t, "go-Q002", 2)
	f.expose(t, "go-Q003", 4)

	stats, err = f.svc.Stats(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, questionbank.BankStats{
		Domain:         "go",
		TotalQuestions: 5,
		Tracked:        3,
		Unseen:         2,
		SeenOnce:       1,
		SeenTwice:      1,
		Exhausted:      1,
	}, stats)

	empty, err := f.svc.Stats(ctx, "linux")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalQuestions)
}

func TestQuestionExposure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.expose(t, "go-Q001", 2)

	e, err := f.svc.QuestionExposure(ctx, "go", "go-Q001")
	require.NoError(t, err)
	assert.Equal(t, 2, e.SeenCount)

	e, err = f.svc.QuestionExposure(ctx, "go", "go-Q002")
	require.NoError(t, err)
	assert.Equal(t, 0, e.SeenCount)
	assert.True(t, e.LastSeen.IsZero())

	_, err = f.svc.QuestionExposure(ctx, "go", "go-Q404")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDomains(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"go", "k8s", "linux"}, f.svc.Domains())
	assert.True(t, f.svc.HasDomain("k8s"))
	assert.False(t, f.svc.HasDomain("rust"))
}
