package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/filtergraph"
	"github.com/omzi/memoire/internal/infrastructure/logger"
	"github.com/omzi/memoire/internal/port"
)

const (
	DefaultPollInterval = 1 * time.Second
	DefaultRenderBudget = 90 * time.Second
)

// Compositor drives one render end to end: load project state, build the
// timeline and filter graph, submit the job, poll it to a terminal state
// and resolve the output artifact. Each call owns its own timeline, graph
// and job handle; nothing is shared across renders.
type Compositor struct {
	projects     port.ProjectStore
	engine       port.RenderEngine
	blobs        port.BlobStore
	pollInterval time.Duration
	renderBudget time.Duration
}

// NewCompositor wires a compositor. blobs may be nil, in which case the
// engine's output URL is returned as-is instead of being re-hosted.
func NewCompositor(projects port.ProjectStore, engine port.RenderEngine, blobs port.BlobStore, pollInterval, renderBudget time.Duration) *Compositor {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if renderBudget <= 0 {
		renderBudget = DefaultRenderBudget
	}
	return &Compositor{
		projects:     projects,
		engine:       engine,
		blobs:        blobs,
		pollInterval: pollInterval,
		renderBudget: renderBudget,
	}
}

// RenderPreview renders the preview video for a project owned by userID
// and returns the URL of the finished artifact. Every error is terminal
// for this attempt; no partial output is ever returned.
func (c *Compositor) RenderPreview(ctx context.Context, userID, projectID string) (string, error) {
	project, err := c.projects.GetProject(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrProjectNotFound
		}
		return "", fmt.Errorf("load project %s: %w", projectID, err)
	}

	narration, err := c.projects.GetNarration(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNarrationNotFound
		}
		return "", fmt.Errorf("load narration for project %s: %w", projectID, err)
	}
	if narration.AudioURL == "" {
		return "", domain.ErrMissingNarration
	}

	media, err := c.projects.ListMedia(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("load media for project %s: %w", projectID, err)
	}

	timeline, err := domain.BuildTimeline(media, project.MediaOrder, project.FrameRate, project.AspectRatio, narration.AudioURL)
	if err != nil {
		return "", err
	}

	graph, err := filtergraph.Build(timeline)
	if err != nil {
		return "", err
	}
	logger.Debug.Printf("project %s: filter graph (%d clips, %d transitions, %ss): %s",
		projectID, len(timeline.Items), graph.Transitions, domain.FormatSeconds(graph.Duration),
		logger.SanitizeForLog(graph.Text()))

	job := NewRenderJob(timeline, graph)
	engineJob, err := c.engine.Submit(ctx, job)
	if err != nil {
		return "", fmt.Errorf("submit render job: %w", err)
	}
	logger.Info.Printf("project %s: render job %d submitted, status=%s", projectID, engineJob.ID, engineJob.Status)

	engineJob, err = c.await(ctx, engineJob)
	if err != nil {
		return "", err
	}

	url, err := Resolve(engineJob, OutputName)
	if err != nil {
		return "", err
	}
	logger.Info.Printf("project %s: render job %d completed, output=%s",
		projectID, engineJob.ID, logger.SanitizeForLog(url))

	return c.publish(ctx, projectID, url), nil
}

// await polls the engine at a fixed interval until the job is terminal.
// The wall-clock budget bounds the whole wait; hitting it is a timeout,
// not a job failure, since the engine may still finish on its own.
func (c *Compositor) await(ctx context.Context, job *domain.EngineJob) (*domain.EngineJob, error) {
	deadline := time.Now().Add(c.renderBudget)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for !job.Status.Terminal() {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("render job %d: %w", job.ID, domain.ErrRenderTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		refreshed, err := c.engine.GetJob(ctx, job.ID)
		if err != nil {
			return nil, fmt.Errorf("poll render job %d: %w", job.ID, err)
		}
		job = refreshed
	}
	return job, nil
}

// Resolve validates a terminal job and extracts the named output. A
// completed job without the output is an error: the engine's
// success/output invariant is not trusted.
func Resolve(job *domain.EngineJob, outputName string) (string, error) {
	switch job.Status {
	case domain.JobStatusCompleted:
		url, ok := job.Outputs[outputName]
		if !ok || url == "" {
			return "", &domain.MissingOutputError{JobID: job.ID, Output: outputName}
		}
		return url, nil
	case domain.JobStatusFailed:
		return "", &domain.RenderFailedError{JobID: job.ID, Logs: job.Logs}
	default:
		return "", fmt.Errorf("render job %d is not terminal (status=%s)", job.ID, job.Status)
	}
}

// publish re-hosts the engine's ephemeral output in the blob store and
// returns the durable URL. Publishing is best-effort: on failure the
// engine URL is still a valid preview, so it is returned with a warning.
func (c *Compositor) publish(ctx context.Context, projectID, engineURL string) string {
	if c.blobs == nil {
		return engineURL
	}

	data, err := c.blobs.Fetch(ctx, engineURL)
	if err != nil {
		logger.Warn.Printf("project %s: fetch rendered output: %v", projectID, err)
		return engineURL
	}
	url, err := c.blobs.Store(ctx, data, "video/mp4")
	if err != nil {
		logger.Warn.Printf("project %s: store rendered output: %v", projectID, err)
		return engineURL
	}
	return url
}
