package questionbank

// Exposure buckets. A question is exhausted once it has been graded
// ExhaustedAfter times; the session selector no longer offers it.
const (
	SeenOnce       = 1
	SeenTwice      = 2
	ExhaustedAfter = 3
)

// BankStats summarises how much of a bank has been exposed.
type BankStats struct {
	Domain         string
	TotalQuestions int
	Tracked        int // questions graded at least once
	Unseen         int
	SeenOnce       int
	SeenTwice      int
	Exhausted      int
}

// NewBankStats derives Unseen from the bank size and the tracked count.
// Stored rows only exist once a question has been graded, so unseen is
// everything in the bank that is not tracked. It never goes below zero, which
// can otherwise happen when questions were removed from a bank after being
// graded.
func NewBankStats(domain string, total, tracked, once, twice, exhausted int) BankStats {
	unseen := total - tracked
	if unseen < 0 {
		unseen = 0
	}
	return BankStats{
		Domain:         domain,
		TotalQuestions: total,
		Tracked:        tracked,
		Unseen:         unseen,
		SeenOnce:       once,
		SeenTwice:      twice,
		Exhausted:      exhausted,
	}
}
