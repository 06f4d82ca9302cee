package practicesession

import "fmt"

const (
	DefaultCount = 10
	MaxCount     = 100
)

// SessionConfig holds the constraints for building a practice session.
type SessionConfig struct {
	Count    int // questions requested
	MaxCount int // upper bound accepted for Count
}

// DefaultConfig returns the config used when a client does not ask for a
// specific number of questions.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		Count:    DefaultCount,
		MaxCount: MaxCount,
	}
}

// WithCount returns a copy of the config asking for n questions. Zero keeps
// the current count.
func (c SessionConfig) WithCount(n int) SessionConfig {
	if n != 0 {
		c.Count = n
	}
	return c
}

func (c SessionConfig) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}
	if c.MaxCount > 0 && c.Count > c.MaxCount {
		return fmt.Errorf("count must be at most %d, got %d", c.MaxCount, c.Count)
	}
	return nil
}
