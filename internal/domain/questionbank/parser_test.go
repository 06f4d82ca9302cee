package questionbank_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
)

func readSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.md")
	require.NoError(t, err)
	return string(data)
}

func TestParse_SampleBank(t *testing.T) {
	questions, err := questionbank.Parse(readSample(t), "go")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	first := questions[0]
	assert.Equal(t, "go-Q001", first.ID)
	assert.Equal(t, "go", first.Domain)
	assert.Equal(t, "basic", first.Difficulty)
	assert.Equal(t, "multiple-choice", first.Type)
	assert.Equal(t, "Which keyword starts a goroutine?", first.Question)
	assert.Equal(t, []string{"- A) go", "- B) async", "- C) spawn"}, first.Options)
	assert.Equal(t, "A) go", first.Answer)
	assert.Equal(t, "The go statement starts a new goroutine.", first.Explanation)

	second := questions[1]
	assert.Equal(t, "go-Q002", second.ID)
	assert.Equal(t, "intermediate", second.Difficulty)
	assert.Equal(t, "fill-blank", second.Type)
	assert.Equal(t, "Complete the declaration:\nch := make(chan int, ___)\nto create a buffered channel of capacity 3.", second.Question)
	assert.Nil(t, second.Options)
	assert.Equal(t, "3", second.Answer)
}

func TestParse_DefaultTags(t *testing.T) {
	questions, err := questionbank.Parse(readSample(t), "go")
	require.NoError(t, err)

	third := questions[2]
	assert.Equal(t, questionbank.DefaultDifficulty, third.Difficulty)
	assert.Equal(t, questionbank.DefaultType, third.Type)
	assert.Empty(t, third.Explanation)
}

func TestParse_SingleTagIsDifficulty(t *testing.T) {
	// Tags are positional: a lone tag is always the difficulty, even when it
	// looks like a type.
	src := "## Q010 [true-false]\n**Question:** Is Go compiled?\n**Answer:** true\n"

	questions, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "true-false", questions[0].Difficulty)
	assert.Equal(t, questionbank.DefaultType, questions[0].Type)
}

func TestParse_Deterministic(t *testing.T) {
	src := readSample(t)

	a, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	b, err := questionbank.Parse(src, "go")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParse_IDsUniqueAndDomainPrefixed(t *testing.T) {
	questions, err := questionbank.Parse(readSample(t), "k8s")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, q := range questions {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		assert.Regexp(t, `^k8s-Q\d{3}$`, q.ID)
	}
}

func TestParse_FrontMatterOnly(t *testing.T) {
	questions, err := questionbank.Parse("# Title\n\nNo questions yet.\n", "linux")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestParse_RuleStopsBlock(t *testing.T) {
	src := "## Q001\n**Question:** First\n---\n**Answer:** ignored\n## Q002\n**Question:** Second\n**Answer:** yes\n"

	questions, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Empty(t, questions[0].Answer)
	assert.Equal(t, "yes", questions[1].Answer)
}

func TestParse_LinesOutsideSectionsAreDropped(t *testing.T) {
	src := "## Q001\nstray text before any label\n**Answer:** 42\nmore text after the answer\n**Question:** Meaning of life?\n"

	questions, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "42", questions[0].Answer)
	assert.Equal(t, "Meaning of life?", questions[0].Question)
}

func TestParse_ExplanationStartingOnNextLine(t *testing.T) {
	src := "## Q001\n**Question:** q\n**Answer:** a\n**Explanation:**\n  first line  \n\n  second line\n"

	questions, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	assert.Equal(t, "first line second line", questions[0].Explanation)
}

func TestParse_CRLF(t *testing.T) {
	src := "## Q001 [basic]\r\n**Question:** q\r\n**Options:**\r\nA\r\nB\r\n**Answer:** A\r\n"

	questions, err := questionbank.Parse(src, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, questions[0].Options)
	assert.Equal(t, "A", questions[0].Answer)
}

func TestParse_UnknownDomain(t *testing.T) {
	_, err := questionbank.Parse(readSample(t), "rust")
	require.Error(t, err)
	assert.True(t, errors.Is(err, questionbank.ErrUnknownDomain))
}

func TestParse_MalformedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"bare marker", "## Q"},
		{"marker with trailing space", "## Q   "},
		{"marker with tag only", "## Q [basic]"},
		{"tag glued to id", "## Q[basic]"},
		{"too many tags", "## Q001 [basic] [multiple-choice] [extra]"},
		{"empty tag", "## Q001 []"},
		{"unterminated tag", "## Q001 [basic"},
		{"text between tags", "## Q001 [basic] oops [multiple-choice]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "intro\n" + tt.header + "\n**Question:** q\n**Answer:** a\n"

			_, err := questionbank.Parse(src, "go")
			require.Error(t, err)

			var perr *questionbank.ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %T", err)
			assert.Equal(t, "go", perr.Domain)
			assert.Equal(t, 2, perr.Line)
		})
	}
}

func TestParse_DuplicateID(t *testing.T) {
	src := "## Q001\n**Answer:** a\n## Q002\n**Answer:** b\n## Q001\n**Answer:** c\n"

	_, err := questionbank.Parse(src, "go")

	var perr *questionbank.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 5, perr.Line)
	assert.Contains(t, perr.Reason, "duplicate")
}
