// Package streampot is an HTTP client for a StreamPot-compatible hosted
// ffmpeg engine: jobs are submitted as an ordered action list and polled
// by id until they reach a terminal state.
package streampot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/port"
)

const DefaultBaseURL = "https://api.streampot.io/v1"

// ErrInvalidSecret is returned when the engine rejects the API key.
// It is distinct from job failures: nothing was rendered.
var ErrInvalidSecret = errors.New("invalid render engine secret")

// APIError is a non-401 engine rejection of an API call itself (malformed
// job, unavailable service), as opposed to a failure of a running job.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("render engine API: HTTP %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the caller may reasonably retry. Client
// errors are permanent; this client itself never retries.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, secret string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Submit enqueues the job and returns the engine's pending job entity.
func (c *Client) Submit(ctx context.Context, job *domain.RenderJob) (*domain.EngineJob, error) {
	body, err := json.Marshal(actionsForJob(job))
	if err != nil {
		return nil, fmt.Errorf("marshal render job: %w", err)
	}

	c.logger.Info("submitting render job",
		"inputs", len(job.Inputs),
		"output", job.Output.Name,
		"body_bytes", len(body),
	)

	entity, err := c.do(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.Info("render job submitted", "job_id", entity.ID, "status", entity.Status)
	return entity, nil
}

// GetJob fetches the current state of a submitted job.
func (c *Client) GetJob(ctx context.Context, id int64) (*domain.EngineJob, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("%s/jobs/%d", c.baseURL, id), nil)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*domain.EngineJob, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidSecret
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var entity domain.EngineJob
	if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
		return nil, fmt.Errorf("decode engine response: %w", err)
	}
	return &entity, nil
}

var _ port.RenderEngine = (*Client)(nil)
