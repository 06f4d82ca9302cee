// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/service"
	"github.com/jeopardy-trainer/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz     *service.QuizService
	sessions practicesession.SessionConfig
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies. sessions holds
// the default and maximum session sizes.
func NewHandler(quiz *service.QuizService, sessions practicesession.SessionConfig, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:     quiz,
		sessions: sessions,
		logger:   logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// handleServiceError maps service, bank and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	var parseErr *questionbank.ParseError
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, questionbank.ErrUnknownDomain),
		errors.Is(err, questionbank.ErrBankNotFound),
		errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &parseErr):
		h.logger.Error("question bank is malformed", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.Error("request failed", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
