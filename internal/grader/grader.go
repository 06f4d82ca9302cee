package grader

import "strings"

// Grader decides whether a submitted answer matches the expected one.
// Implementations may normalize differently; the service only needs a verdict.
type Grader interface {
	Grade(expected, given string) bool
}

// ExactMatch accepts an answer equal to the expected one after trimming
// surrounding whitespace, ignoring case. There is no partial credit.
type ExactMatch struct{}

func (ExactMatch) Grade(expected, given string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(given))
}
