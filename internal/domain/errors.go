package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNarrationNotFound = errors.New("narration not found")
	ErrEmptyTimeline     = errors.New("timeline has no media items")
	ErrMissingNarration  = errors.New("narration audio not set")
	ErrRenderTimeout     = errors.New("render did not complete within budget")
)

// MissingMediaError is returned when the project's ordering list references
// a media id that has no backing media item.
type MissingMediaError struct {
	ID string
}

func (e *MissingMediaError) Error() string {
	return fmt.Sprintf("media %s referenced by order list but not found", e.ID)
}

type InvalidDurationError struct {
	ID       string
	Duration float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("media %s has invalid duration %v, must be positive", e.ID, e.Duration)
}

type InvalidTransitionError struct {
	ID         string
	Transition Transition
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("media %s has unknown transition %q", e.ID, e.Transition)
}

// RenderFailedError carries the engine's logs verbatim so a failed render
// can be diagnosed after the fact.
type RenderFailedError struct {
	JobID int64
	Logs  string
}

func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("render job %d failed: %s", e.JobID, e.Logs)
}

// MissingOutputError is returned when a job reports success but the named
// output is absent. The engine's success/output invariant is not trusted.
type MissingOutputError struct {
	JobID  int64
	Output string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("render job %d completed without output %q", e.JobID, e.Output)
}
