package wizard

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the stateless wizard routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/next-question", h.NextQuestion)
		r.Post("/generate-blueprint", h.GenerateBlueprint)
	})
}
