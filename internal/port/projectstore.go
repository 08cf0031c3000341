package port

import (
	"context"

	"github.com/omzi/memoire/internal/domain"
)

// ProjectStore supplies the authoritative project state a render is built
// from. The compositor only reads; the save methods exist for the layers
// that maintain project state.
type ProjectStore interface {
	GetProject(ctx context.Context, id, userID string) (*domain.Project, error)
	ListMedia(ctx context.Context, projectID string) ([]domain.MediaItem, error)
	GetNarration(ctx context.Context, projectID string) (*domain.Narration, error)

	SaveProject(ctx context.Context, p *domain.Project) error
	SaveMedia(ctx context.Context, projectID string, m *domain.MediaItem) error
	SaveNarration(ctx context.Context, n *domain.Narration) error
}
