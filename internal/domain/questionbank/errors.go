package questionbank

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDomain is returned for a domain that has no source document
	// configured.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrBankNotFound is returned when a configured source document is missing.
	ErrBankNotFound = errors.New("question bank not found")
)

// ParseError reports a malformed block in a question bank.
type ParseError struct {
	Domain string
	Line   int // 1-based line of the block header
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s bank: line %d: %s", e.Domain, e.Line, e.Reason)
}
