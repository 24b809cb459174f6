package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/interview", func(r chi.Router) {
		r.Post("/", h.StartInterview)
		r.Get("/{id}", h.GetInterview)
		r.Post("/{id}/select", h.SelectOption)
		r.Post("/{id}/commit", h.CommitChoice)
		r.Post("/{id}/retry", h.RetryStep)
		r.Post("/{id}/restart", h.RestartInterview)
		r.Delete("/{id}", h.CancelInterview)
		r.Get("/{id}/blueprint", h.GetBlueprint)
		r.Get("/{id}/blueprint/export", h.ExportBlueprint)
	})
}
