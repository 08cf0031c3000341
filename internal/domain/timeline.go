package domain

const (
	DefaultFrameRate   = 24
	DefaultAspectRatio = "16:9"
)

// Timeline is the validated, ordered sequence a render is built from. It is
// constructed fresh per render request and never mutated afterwards.
type Timeline struct {
	Items             []MediaItem
	FrameRate         int
	AspectRatio       string
	NarrationAudioURL string
}

// BuildTimeline reorders items to match orderIDs and validates the result.
// Items absent from orderIDs are dropped; order ids with no backing item
// fail with MissingMediaError. The caller's slices are not mutated.
func BuildTimeline(items []MediaItem, orderIDs []string, frameRate int, aspectRatio, narrationAudioURL string) (*Timeline, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTimeline
	}
	if narrationAudioURL == "" {
		return nil, ErrMissingNarration
	}

	byID := make(map[string]MediaItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]MediaItem, 0, len(orderIDs))
	for _, id := range orderIDs {
		item, ok := byID[id]
		if !ok {
			return nil, &MissingMediaError{ID: id}
		}
		ordered = append(ordered, item)
	}
	if len(ordered) == 0 {
		return nil, ErrEmptyTimeline
	}

	for i, item := range ordered {
		if item.Duration <= 0 {
			return nil, &InvalidDurationError{ID: item.ID, Duration: item.Duration}
		}
		// The last item's transition is never used, so it may be unset.
		if i < len(ordered)-1 && !item.Transition.Valid() {
			return nil, &InvalidTransitionError{ID: item.ID, Transition: item.Transition}
		}
	}

	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	return &Timeline{
		Items:             ordered,
		FrameRate:         frameRate,
		AspectRatio:       aspectRatio,
		NarrationAudioURL: narrationAudioURL,
	}, nil
}
