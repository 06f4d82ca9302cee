package api

import (
	"net/http"
	"time"
)

type StatsResponse struct {
	Domain         string `json:"domain"`
	TotalQuestions int    `json:"total_questions"`
	Tracked        int    `json:"tracked"`
	Unseen         int    `json:"unseen"`
	SeenOnce       int    `json:"seen_once"`
	SeenTwice      int    `json:"seen_twice"`
	Exhausted      int    `json:"exhausted"`
}

type QuestionExposureResponse struct {
	QuestionID string     `json:"question_id"`
	Domain     string     `json:"domain"`
	SeenCount  int        `json:"seen_count"`
	LastSeen   *time.Time `json:"last_seen"`
}

type DomainsResponse struct {
	Domains []string `json:"domains"`
}

type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// getStats godoc
// @Summary      Domain exposure stats
// @Description  Reports how many questions of a domain were never seen, seen once, twice, or three times and more.
// @Tags         Stats
// @Produce      json
// @Param        domain  path      string  true  "Domain"
// @Success      200     {object}  StatsResponse
// @Failure      404     {object}  errorResponse  "unknown domain or bank file missing"
// @Failure      500     {object}  errorResponse
// @Router       /stats/{domain} [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")

	stats, err := h.quiz.Stats(r.Context(), domain)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{
		Domain:         stats.Domain,
		TotalQuestions: stats.TotalQuestions,
		Tracked:        stats.Tracked,
		Unseen:         stats.Unseen,
		SeenOnce:       stats.SeenOnce,
		SeenTwice:      stats.SeenTwice,
		Exhausted:      stats.Exhausted,
	})
}

// getQuestionExposure godoc
// @Summary      Question exposure
// @Description  Returns the exposure counter of one question. last_seen is null for questions never graded.
// @Tags         Stats
// @Produce      json
// @Param        domain      path      string  true  "Domain"
// @Param        questionID  path      string  true  "Question ID, e.g. go-Q001"
// @Success      200         {object}  QuestionExposureResponse
// @Failure      404         {object}  errorResponse  "unknown domain or question"
// @Failure      500         {object}  errorResponse
// @Router       /stats/{domain}/questions/{questionID} [get]
func (h *Handler) getQuestionExposure(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	questionID := r.PathValue("questionID")

	e, err := h.quiz.QuestionExposure(r.Context(), domain, questionID)
	if h.handleServiceError(w, r, err) {
		return
	}

	resp := QuestionExposureResponse{
		QuestionID: e.QuestionID,
		Domain:     e.Domain,
		SeenCount:  e.SeenCount,
	}
	if !e.LastSeen.IsZero() {
		lastSeen := e.LastSeen.UTC()
		resp.LastSeen = &lastSeen
	}
	respondJSON(w, http.StatusOK, resp)
}

// listDomains godoc
// @Summary      List domains
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  DomainsResponse
// @Router       /domains [get]
func (h *Handler) listDomains(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DomainsResponse{Domains: h.quiz.Domains()})
}

// info godoc
// @Summary      API info
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  InfoResponse
// @Router       / [get]
func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, InfoResponse{Message: "Jeopardy Trainer API", Version: "1.0"})
}

// health godoc
// @Summary      Health check
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
