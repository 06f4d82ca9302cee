package api

import (
	"net/http"
)

// RegisterRoutes wires every API endpoint to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Meta
	mux.HandleFunc("GET /{$}", h.info)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /domains", h.listDomains)

	// Sessions
	mux.HandleFunc("POST /session/start", h.startSession)
	mux.HandleFunc("POST /session/submit", h.submitSession)

	// Stats
	mux.HandleFunc("GET /stats/{domain}", h.getStats)
	mux.HandleFunc("GET /stats/{domain}/questions/{questionID}", h.getQuestionExposure)
}

// RegisterStatic serves the frontend in dir under /static/ and /app/.
func RegisterStatic(mux *http.ServeMux, dir string) {
	files := http.FileServer(http.Dir(dir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", files))
	mux.Handle("GET /app/", http.StripPrefix("/app/", files))
}
