package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/filtergraph"
)

func testTimeline(t *testing.T) (*domain.Timeline, *filtergraph.Graph) {
	t.Helper()
	timeline := &domain.Timeline{
		Items: []domain.MediaItem{
			{ID: "a", Kind: domain.MediaKindPhoto, SourceURL: "https://files.example.com/a.jpg", Duration: 3, Transition: domain.TransitionFade},
			{ID: "b", Kind: domain.MediaKindVideo, SourceURL: "https://files.example.com/b.mp4", Duration: 7},
		},
		FrameRate:         24,
		AspectRatio:       "16:9",
		NarrationAudioURL: "https://files.example.com/narration.mp3",
	}
	graph, err := filtergraph.Build(timeline)
	require.NoError(t, err)
	return timeline, graph
}

func TestNewRenderJob_InputOrder(t *testing.T) {
	timeline, graph := testTimeline(t)

	job := NewRenderJob(timeline, graph)

	require.Len(t, job.Inputs, 3, "one input per clip plus the narration audio")
	assert.Equal(t, "https://files.example.com/a.jpg", job.Inputs[0].Source)
	assert.Equal(t, "https://files.example.com/b.mp4", job.Inputs[1].Source)
	assert.Equal(t, "https://files.example.com/narration.mp3", job.Inputs[2].Source)
}

func TestNewRenderJob_PhotoLoopOptions(t *testing.T) {
	timeline, graph := testTimeline(t)

	job := NewRenderJob(timeline, graph)

	assert.Equal(t, []string{"-loop", "1", "-t", "3"}, job.Inputs[0].Options)
	assert.Empty(t, job.Inputs[1].Options, "video clips are registered without loop options")
	assert.Empty(t, job.Inputs[2].Options)
}

func TestNewRenderJob_OutputOptions(t *testing.T) {
	timeline, graph := testTimeline(t)

	job := NewRenderJob(timeline, graph)

	out := job.Output
	assert.Equal(t, OutputName, out.Name)
	assert.Equal(t, "aac", out.AudioCodec)
	assert.Equal(t, "192k", out.AudioBitrate)
	assert.Equal(t, "libx264", out.VideoCodec)
	assert.Equal(t, "1000k", out.VideoBitrate)
	assert.True(t, out.ConstantBitrate)

	assert.Equal(t, []string{
		"-filter_complex", graph.Text(),
		"-map", "[v1]",
		"-map", "2:a",
		"-shortest",
		"-pix_fmt", "yuv420p",
		"-aspect", "16:9",
		"-r", "24",
	}, out.Options)
}

func TestNewRenderJob_FractionalPhotoDuration(t *testing.T) {
	timeline := &domain.Timeline{
		Items: []domain.MediaItem{
			{ID: "a", Kind: domain.MediaKindPhoto, SourceURL: "https://files.example.com/a.jpg", Duration: 2.5},
		},
		FrameRate:         24,
		AspectRatio:       "16:9",
		NarrationAudioURL: "https://files.example.com/narration.mp3",
	}
	graph, err := filtergraph.Build(timeline)
	require.NoError(t, err)

	job := NewRenderJob(timeline, graph)
	assert.Equal(t, []string{"-loop", "1", "-t", "2.5"}, job.Inputs[0].Options)
}
