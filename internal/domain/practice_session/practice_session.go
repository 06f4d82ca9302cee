package practicesession

import (
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
)

// PracticeSession is the batch of questions handed to a client. It carries no
// answers or explanations.
type PracticeSession struct {
	Domain    string
	Questions []questionbank.ClientQuestion
}

// New creates a session for domain from already selected questions.
func New(domain string, selected []questionbank.Question) *PracticeSession {
	questions := make([]questionbank.ClientQuestion, len(selected))
	for i, q := range selected {
		questions[i] = q.Public()
	}
	return &PracticeSession{
		Domain:    domain,
		Questions: questions,
	}
}

// Count returns the number of questions in the session.
func (s *PracticeSession) Count() int {
	return len(s.Questions)
}
