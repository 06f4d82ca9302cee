package practicesession

import (
	"math/rand"
	"sync"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
)

// tiers lists the seen counts eligible for selection, least exposed first.
// Exhausted questions (seen three times or more) are never offered.
var tiers = []int{0, questionbank.SeenOnce, questionbank.SeenTwice}

// Shuffler randomizes the order of n elements. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Selector picks the questions of a session, preferring the least exposed.
type Selector struct {
	shuffler Shuffler
}

// NewSelector creates a Selector. A nil shuffler leaves the selection in
// tier order, which is only useful in tests.
func NewSelector(shuffler Shuffler) *Selector {
	return &Selector{shuffler: shuffler}
}

// Select fills up to desired slots tier by tier: first questions never seen,
// then seen once, then seen twice. Within a tier the bank order decides. The
// picked set is shuffled before it is returned. seen maps question IDs to
// their exposure count; missing IDs count as unseen.
func (s *Selector) Select(questions []questionbank.Question, seen map[string]int, desired int) []questionbank.Question {
	if desired <= 0 {
		return nil
	}

	selected := make([]questionbank.Question, 0, min(desired, len(questions)))
	taken := make([]bool, len(questions))

	for _, tier := range tiers {
		for i, q := range questions {
			if len(selected) >= desired {
				break
			}
			if taken[i] || seen[q.ID] != tier {
				continue
			}
			selected = append(selected, q)
			taken[i] = true
		}
	}

	if s.shuffler != nil {
		s.shuffler.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	if len(selected) > desired {
		selected = selected[:desired]
	}
	return selected
}

// LockedRand is a *rand.Rand that is safe for concurrent use.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *LockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
