package questionbank

const (
	DefaultDifficulty = "basic"
	DefaultType       = "multiple-choice"
)

// Question is a single parsed entry of a markdown question bank.
type Question struct {
	ID          string // "{domain}-{localID}", the exposure store key
	Domain      string
	Difficulty  string
	Type        string
	Question    string
	Options     []string // nil when the block has no options section
	Answer      string
	Explanation string
}

// ClientQuestion is the part of a Question that may be shown before grading.
type ClientQuestion struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
}

// Public strips the answer and explanation.
func (q Question) Public() ClientQuestion {
	return ClientQuestion{
		ID:         q.ID,
		Type:       q.Type,
		Difficulty: q.Difficulty,
		Question:   q.Question,
		Options:    q.Options,
	}
}

// QuestionBank holds every question parsed from one domain's source document.
type QuestionBank struct {
	Domain    string
	Title     string
	Questions []Question
}

// Len returns the number of questions in the bank.
func (qb *QuestionBank) Len() int {
	return len(qb.Questions)
}

// Index returns the bank's questions keyed by ID.
func (qb *QuestionBank) Index() map[string]Question {
	index := make(map[string]Question, len(qb.Questions))
	for _, q := range qb.Questions {
		index[q.ID] = q
	}
	return index
}
