package port

import (
	"context"

	"github.com/omzi/memoire/internal/domain"
)

// RenderEngine is the external transcoding service. Submit enqueues a job
// and returns immediately with a pending job entity; GetJob fetches the
// current state of a previously submitted job.
type RenderEngine interface {
	Submit(ctx context.Context, job *domain.RenderJob) (*domain.EngineJob, error)
	GetJob(ctx context.Context, id int64) (*domain.EngineJob, error)
}
