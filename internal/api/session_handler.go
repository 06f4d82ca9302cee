package api

import (
	"errors"
	"net/http"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Domain string `json:"domain"`
	Count  *int   `json:"count,omitempty"`
}

func (r StartSessionRequest) Validate() error {
	if r.Domain == "" {
		return errors.New("domain is required")
	}
	if r.Count != nil && *r.Count < 1 {
		return errors.New("count must be at least 1")
	}
	return nil
}

type StartSessionResponse struct {
	Domain    string                        `json:"domain"`
	Questions []questionbank.ClientQuestion `json:"questions"`
	Count     int                           `json:"count"`
}

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

type SubmitSessionRequest struct {
	Domain  string          `json:"domain"`
	Answers []AnswerRequest `json:"answers"`
}

func (r SubmitSessionRequest) Validate() error {
	if r.Domain == "" {
		return errors.New("domain is required")
	}
	return nil
}

type GradedResultResponse struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"user_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
}

type SubmitSessionResponse struct {
	Score      int                    `json:"score"`
	Total      int                    `json:"total"`
	Percentage float64                `json:"percentage"`
	Results    []GradedResultResponse `json:"results"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startSession godoc
// @Summary      Start a practice session
// @Description  Selects up to count questions of a domain, least exposed first. Answers and explanations are withheld.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      StartSessionRequest   true  "Domain and optional size"
// @Success      200   {object}  StartSessionResponse
// @Failure      400   {object}  errorResponse  "unknown domain or invalid count"
// @Failure      404   {object}  errorResponse  "bank file missing"
// @Failure      500   {object}  errorResponse
// @Router       /session/start [post]
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeAndValidate(w, r, startSessionRequestSchema, &req) {
		return
	}

	if !h.quiz.HasDomain(req.Domain) {
		respondError(w, http.StatusBadRequest, "invalid domain: "+req.Domain)
		return
	}

	config := h.sessions
	if req.Count != nil {
		config = config.WithCount(*req.Count)
	}

	session, err := h.quiz.StartSession(r.Context(), req.Domain, config)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, StartSessionResponse{
		Domain:    session.Domain,
		Questions: session.Questions,
		Count:     session.Count(),
	})
}

// submitSession godoc
// @Summary      Submit answers
// @Description  Grades answers by case-insensitive exact match and records one exposure per graded question. Unknown question ids are skipped.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitSessionRequest   true  "Answers to grade"
// @Success      200   {object}  SubmitSessionResponse
// @Failure      400   {object}  errorResponse  "unknown domain or malformed body"
// @Failure      404   {object}  errorResponse  "bank file missing"
// @Failure      500   {object}  errorResponse
// @Router       /session/submit [post]
func (h *Handler) submitSession(w http.ResponseWriter, r *http.Request) {
	var req SubmitSessionRequest
	if !decodeAndValidate(w, r, submitSessionRequestSchema, &req) {
		return
	}

	if !h.quiz.HasDomain(req.Domain) {
		respondError(w, http.StatusBadRequest, "invalid domain: "+req.Domain)
		return
	}

	answers := make([]service.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = service.Answer{QuestionID: a.QuestionID, UserAnswer: a.UserAnswer}
	}

	result, err := h.quiz.SubmitSession(r.Context(), req.Domain, answers)
	if h.handleServiceError(w, r, err) {
		return
	}

	results := make([]GradedResultResponse, len(result.Results))
	for i, g := range result.Results {
		results[i] = GradedResultResponse{
			QuestionID:    g.QuestionID,
			Question:      g.Question,
			Type:          g.Type,
			Options:       g.Options,
			UserAnswer:    g.UserAnswer,
			CorrectAnswer: g.CorrectAnswer,
			IsCorrect:     g.IsCorrect,
			Explanation:   g.Explanation,
		}
	}

	respondJSON(w, http.StatusOK, SubmitSessionResponse{
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Results:    results,
	})
}
