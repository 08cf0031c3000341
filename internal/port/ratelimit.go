package port

import "context"

// RateLimiter bounds how often a caller may trigger a render. Allow
// consumes one slot for key when the quota permits it.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
