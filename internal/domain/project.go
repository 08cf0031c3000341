package domain

import "time"

// Project holds the render-relevant settings of one memoir project. The
// authoritative copy lives in the project store; a Project is read fresh
// for each render and never written back by the compositor.
type Project struct {
	ID          string
	UserID      string
	Title       string
	MediaOrder  []string
	FrameRate   int
	AspectRatio string
	CreatedAt   time.Time
}

// Narration is the single mixed narration track of a project. Transcript
// and voice are carried for diagnostics; only AudioURL matters to a render.
type Narration struct {
	ProjectID  string
	Transcript string
	AudioURL   string
	Voice      string
}
