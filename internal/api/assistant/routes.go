package assistant

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assistant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/upload", h.Upload)
	r.Post("/chat", h.Chat)
	r.Get("/sessions", h.ListSessions)
	r.Route("/session/{id}", func(r chi.Router) {
		r.Delete("/", h.DeleteSession)
		r.Get("/export", h.ExportTranscript)
	})
}
