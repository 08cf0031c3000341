// Package ratelimit bounds how often a caller may trigger a render. The
// quota is a sliding window (default 2 renders per 12 hours per caller).
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/omzi/memoire/internal/port"
)

const (
	DefaultQuota  = 2
	DefaultWindow = 12 * time.Hour
)

// MemoryLimiter is the in-process sliding window limiter for single-node
// deployments. State does not survive restarts.
type MemoryLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	quota   int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(quota int, window time.Duration) *MemoryLimiter {
	if quota <= 0 {
		quota = DefaultQuota
	}
	if window <= 0 {
		window = DefaultWindow
	}
	limiter := &MemoryLimiter{
		history: make(map[string][]time.Time),
		quota:   quota,
		window:  window,
		now:     time.Now,
	}

	go limiter.cleanup()

	return limiter
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.history[key][:0]
	for _, t := range l.history[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.quota {
		l.history[key] = recent
		return false, nil
	}

	l.history[key] = append(recent, now)
	return true, nil
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := l.now().Add(-l.window)
		for key, times := range l.history {
			live := 0
			for _, t := range times {
				if t.After(cutoff) {
					live++
				}
			}
			if live == 0 {
				delete(l.history, key)
			}
		}
		l.mu.Unlock()
	}
}

var _ port.RateLimiter = (*MemoryLimiter)(nil)
