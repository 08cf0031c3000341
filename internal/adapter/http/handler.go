package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/infrastructure/logger"
	"github.com/omzi/memoire/internal/port"
)

// CompositorService renders a project preview and returns the artifact URL.
type CompositorService interface {
	RenderPreview(ctx context.Context, userID, projectID string) (string, error)
}

type Handlers struct {
	compositor CompositorService
	limiter    port.RateLimiter
}

func NewHandlers(compositor CompositorService, limiter port.RateLimiter) *Handlers {
	return &Handlers{
		compositor: compositor,
		limiter:    limiter,
	}
}

// GeneratePreview is the one core operation: render the preview video of a
// project. Precondition failures map to 400 with the specific reason;
// engine and internal failures map to 500 with a generic message, details
// logged server-side only.
func (h *Handlers) GeneratePreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r.Context())
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			WriteError(w, http.StatusBadRequest, "Invalid request. Provide projectId.", "BAD_REQUEST")
			return
		}

		allowed, err := h.limiter.Allow(r.Context(), "generatePreview-"+userID)
		if err != nil {
			logger.Error.Printf("rate limit check for user %s: %v", userID, err)
			WriteError(w, http.StatusInternalServerError, "An error occurred!", "INTERNAL_ERROR")
			return
		}
		if !allowed {
			WriteError(w, http.StatusTooManyRequests, "Rate limited!", "RATE_LIMITED")
			return
		}

		previewURL, err := h.compositor.RenderPreview(r.Context(), userID, projectID)
		if err != nil {
			h.writeRenderError(w, projectID, err)
			return
		}

		WriteJSON(w, http.StatusOK, PreviewResponse{
			Message: "Preview generated!",
			Data:    PreviewData{Preview: previewURL},
		})
	}
}

func (h *Handlers) writeRenderError(w http.ResponseWriter, projectID string, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		WriteError(w, http.StatusBadRequest, "Project not found!", "PROJECT_NOT_FOUND")
	case errors.Is(err, domain.ErrNarrationNotFound):
		WriteError(w, http.StatusBadRequest, "Narration not found!", "NARRATION_NOT_FOUND")
	case errors.Is(err, domain.ErrMissingNarration):
		WriteError(w, http.StatusBadRequest, "Narration audio not found!", "NARRATION_AUDIO_NOT_FOUND")
	case errors.Is(err, domain.ErrEmptyTimeline):
		WriteError(w, http.StatusBadRequest, "No media uploaded yet!", "NO_MEDIA")
	default:
		// Engine failures, graph construction errors and timeouts are all
		// internal: log the full reason, return a generic message.
		logger.Error.Printf("preview generation for project %s: %v", projectID, logSafe(err))
		WriteError(w, http.StatusInternalServerError, "Failed to generate preview!", "INTERNAL_ERROR")
	}
}

func logSafe(err error) string {
	return logger.SanitizeForLog(err.Error())
}
