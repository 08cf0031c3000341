package service

import (
	"fmt"
	"strconv"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/filtergraph"
)

// OutputName is the single named output target every render job produces.
const OutputName = "generated.mp4"

const (
	audioCodec   = "aac"
	audioBitrate = "192k"
	videoCodec   = "libx264"
	videoBitrate = "1000k"
	pixelFormat  = "yuv420p"
)

// NewRenderJob builds the immutable job description for one render: one
// input per clip in timeline order, the narration audio appended last, and
// the fixed output options around the built filter graph. Photos are
// registered with a static-image loop bounded to their timeline duration;
// videos are registered as-is.
func NewRenderJob(t *domain.Timeline, g *filtergraph.Graph) *domain.RenderJob {
	inputs := make([]domain.InputSpec, 0, len(t.Items)+1)
	for _, item := range t.Items {
		in := domain.InputSpec{Source: item.SourceURL}
		if item.Kind == domain.MediaKindPhoto {
			in.Options = []string{"-loop", "1", "-t", domain.FormatSeconds(item.Duration)}
		}
		inputs = append(inputs, in)
	}
	inputs = append(inputs, domain.InputSpec{Source: t.NarrationAudioURL})

	return &domain.RenderJob{
		Inputs: inputs,
		Output: domain.OutputSpec{
			Name:            OutputName,
			AudioCodec:      audioCodec,
			AudioBitrate:    audioBitrate,
			VideoCodec:      videoCodec,
			VideoBitrate:    videoBitrate,
			ConstantBitrate: true,
			Options: []string{
				"-filter_complex", g.Text(),
				"-map", "[" + g.FinalLabel + "]",
				"-map", fmt.Sprintf("%d:a", g.AudioInput),
				"-shortest",
				"-pix_fmt", pixelFormat,
				"-aspect", t.AspectRatio,
				"-r", strconv.Itoa(t.FrameRate),
			},
		},
	}
}
