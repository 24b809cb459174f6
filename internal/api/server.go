package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/api/docs"
	interviewapi "github.com/nicheroot/wizard-backend/internal/api/interview"
	"github.com/nicheroot/wizard-backend/internal/api/middleware"
	wizardapi "github.com/nicheroot/wizard-backend/internal/api/wizard"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(wizardHandler *wizardapi.Handler, interviewHandler *interviewapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(90 * time.Second)) // Model calls can run long

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	wizardapi.RegisterRoutes(r, wizardHandler)
	interviewapi.RegisterRoutes(r, interviewHandler)

	return r
}
