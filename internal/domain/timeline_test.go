package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photo(id string, duration float64, transition Transition) MediaItem {
	return MediaItem{
		ID:         id,
		Kind:       MediaKindPhoto,
		SourceURL:  "https://files.example.com/" + id + ".jpg",
		Duration:   duration,
		Transition: transition,
	}
}

func TestBuildTimeline_ReordersToMatchOrderList(t *testing.T) {
	items := []MediaItem{
		photo("a", 3, TransitionFade),
		photo("b", 4, TransitionWipeLeft),
		photo("c", 5, TransitionFade),
	}

	tests := []struct {
		name     string
		orderIDs []string
		wantIDs  []string
	}{
		{
			name:     "identity order",
			orderIDs: []string{"a", "b", "c"},
			wantIDs:  []string{"a", "b", "c"},
		},
		{
			name:     "reversed",
			orderIDs: []string{"c", "b", "a"},
			wantIDs:  []string{"c", "b", "a"},
		},
		{
			name:     "unreferenced items dropped",
			orderIDs: []string{"b", "a"},
			wantIDs:  []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline, err := BuildTimeline(items, tt.orderIDs, 24, "16:9", "https://files.example.com/narration.mp3")
			require.NoError(t, err)

			gotIDs := make([]string, len(timeline.Items))
			for i, item := range timeline.Items {
				gotIDs[i] = item.ID
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestBuildTimeline_DoesNotMutateInput(t *testing.T) {
	items := []MediaItem{
		photo("a", 3, TransitionFade),
		photo("b", 4, TransitionFade),
	}
	orderIDs := []string{"b", "a"}

	_, err := BuildTimeline(items, orderIDs, 24, "16:9", "https://files.example.com/narration.mp3")
	require.NoError(t, err)

	assert.Equal(t, "a", items[0].ID, "caller's items must keep their order")
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, []string{"b", "a"}, orderIDs)
}

func TestBuildTimeline_MissingMedia(t *testing.T) {
	items := []MediaItem{photo("a", 3, TransitionFade)}

	_, err := BuildTimeline(items, []string{"a", "ghost"}, 24, "16:9", "https://files.example.com/narration.mp3")

	var missingErr *MissingMediaError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "ghost", missingErr.ID)
}

func TestBuildTimeline_EmptyMedia(t *testing.T) {
	_, err := BuildTimeline(nil, []string{"a"}, 24, "16:9", "https://files.example.com/narration.mp3")
	assert.ErrorIs(t, err, ErrEmptyTimeline)
}

func TestBuildTimeline_OrderListReferencesNothing(t *testing.T) {
	items := []MediaItem{photo("a", 3, TransitionFade)}

	_, err := BuildTimeline(items, nil, 24, "16:9", "https://files.example.com/narration.mp3")
	assert.ErrorIs(t, err, ErrEmptyTimeline)
}

func TestBuildTimeline_MissingNarration(t *testing.T) {
	tests := []struct {
		name  string
		items []MediaItem
	}{
		{name: "with media", items: []MediaItem{photo("a", 3, TransitionFade)}},
		{name: "several media", items: []MediaItem{photo("a", 3, TransitionFade), photo("b", 4, TransitionFade)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTimeline(tt.items, []string{"a"}, 24, "16:9", "")
			assert.ErrorIs(t, err, ErrMissingNarration)
		})
	}
}

func TestBuildTimeline_InvalidDuration(t *testing.T) {
	for _, duration := range []float64{0, -1} {
		items := []MediaItem{photo("a", duration, TransitionFade)}

		_, err := BuildTimeline(items, []string{"a"}, 24, "16:9", "https://files.example.com/narration.mp3")

		var durErr *InvalidDurationError
		require.ErrorAs(t, err, &durErr)
		assert.Equal(t, "a", durErr.ID)
		assert.Equal(t, duration, durErr.Duration)
	}
}

func TestBuildTimeline_InvalidTransition(t *testing.T) {
	items := []MediaItem{
		photo("a", 3, Transition("spiral")),
		photo("b", 3, TransitionFade),
	}

	_, err := BuildTimeline(items, []string{"a", "b"}, 24, "16:9", "https://files.example.com/narration.mp3")

	var transErr *InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, "a", transErr.ID)
}

func TestBuildTimeline_LastTransitionUnused(t *testing.T) {
	// The trailing item's transition never feeds a blend, so it may be unset.
	items := []MediaItem{
		photo("a", 3, TransitionFade),
		photo("b", 3, ""),
	}

	timeline, err := BuildTimeline(items, []string{"a", "b"}, 24, "16:9", "https://files.example.com/narration.mp3")
	require.NoError(t, err)
	assert.Len(t, timeline.Items, 2)
}

func TestBuildTimeline_Defaults(t *testing.T) {
	items := []MediaItem{photo("a", 3, TransitionFade)}

	timeline, err := BuildTimeline(items, []string{"a"}, 0, "", "https://files.example.com/narration.mp3")
	require.NoError(t, err)

	assert.Equal(t, DefaultFrameRate, timeline.FrameRate)
	assert.Equal(t, DefaultAspectRatio, timeline.AspectRatio)
}

func TestBuildTimeline_ErrorsAreTyped(t *testing.T) {
	_, err := BuildTimeline(nil, nil, 24, "16:9", "x")
	assert.True(t, errors.Is(err, ErrEmptyTimeline))
}
