package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omzi/memoire/internal/port"
)

type ServerConfig struct {
	Compositor CompositorService
	Limiter    port.RateLimiter
	Validator  TokenValidator
	Logger     *slog.Logger
	Version    string
	StartTime  time.Time
}

// NewRouter assembles the HTTP surface: an unauthenticated health probe
// and the authenticated render endpoint.
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	handlers := NewHandlers(cfg.Compositor, cfg.Limiter)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Validator))

		r.Post("/api/projects/{projectID}/preview", handlers.GeneratePreview())
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}
