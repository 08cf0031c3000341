// Package filtergraph turns a validated timeline into the filter_complex
// graph a render job executes: one normalization stage per clip and one
// xfade stage per adjacent pair, chained through a single combined stream.
package filtergraph

import (
	"fmt"
	"strings"

	"github.com/omzi/memoire/internal/domain"
)

// Canonical working resolution. Every clip is scaled into this canvas
// before any blending so xfade always sees matching dimensions.
const (
	canvasWidth  = 1280
	canvasHeight = 720
)

// TransitionSeconds is the fixed blend length of every transition. Each
// transition absorbs exactly this much of the combined timeline.
const TransitionSeconds = 1

// Stage is one node of the graph: input stream labels, a filter expression
// and the output label it produces.
type Stage struct {
	Inputs []string
	Filter string
	Output string
}

func (s Stage) String() string {
	var b strings.Builder
	for _, in := range s.Inputs {
		b.WriteString("[" + in + "]")
	}
	b.WriteString(s.Filter)
	b.WriteString("[" + s.Output + "]")
	return b.String()
}

// Graph is the built filter graph plus everything the job submitter needs
// to map its result: the final combined video label, the index of the
// narration audio input (appended after all clip inputs) and the combined
// duration in seconds after transition overlaps are absorbed.
type Graph struct {
	Stages      []Stage
	FinalLabel  string
	AudioInput  int
	Duration    float64
	Transitions int
}

// Text joins all stage expressions into the filter_complex argument.
func (g *Graph) Text() string {
	parts := make([]string, len(g.Stages))
	for i, s := range g.Stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

// Build walks the ordered clips once, emitting a normalization stage per
// clip and a transition stage for every clip after the first. The blend
// between clip i and i+1 uses clip i's configured transition and starts
// one second before the running cumulative point, so each transition
// overlaps the outgoing clip's last second.
func Build(t *domain.Timeline) (*Graph, error) {
	if len(t.Items) == 0 {
		return nil, domain.ErrEmptyTimeline
	}

	g := &Graph{
		Stages:     make([]Stage, 0, 2*len(t.Items)-1),
		AudioInput: len(t.Items),
	}

	var offset float64
	for i, item := range t.Items {
		label := fmt.Sprintf("v%d", i)
		g.Stages = append(g.Stages, normalize(i, item, t.FrameRate, label))

		if i == 0 {
			g.FinalLabel = label
			offset = item.Duration
			continue
		}

		// The transition belongs to the outgoing clip, and its output
		// reuses the incoming clip's label: the chain stays linear with
		// exactly one combined stream at any point.
		outgoing := t.Items[i-1]
		g.Stages = append(g.Stages, Stage{
			Inputs: []string{g.FinalLabel, label},
			Filter: fmt.Sprintf("xfade=transition=%s:duration=%d:offset=%s",
				outgoing.Transition, TransitionSeconds, domain.FormatSeconds(offset-TransitionSeconds)),
			Output: label,
		})
		g.FinalLabel = label
		g.Transitions++
		offset += item.Duration - TransitionSeconds
	}
	g.Duration = offset

	return g, nil
}

// normalize scales a clip into the canvas preserving aspect ratio, pads it
// centered to exact canvas dimensions, forces square pixels and conforms
// the frame rate. Photos are additionally looped into a segment of
// duration*frameRate frames so the still becomes a video of the right
// length.
func normalize(index int, item domain.MediaItem, frameRate int, label string) Stage {
	var b strings.Builder
	fmt.Fprintf(&b, "scale=w=%d:h=%d:force_original_aspect_ratio=decrease,", canvasWidth, canvasHeight)
	fmt.Fprintf(&b, "pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,", canvasWidth, canvasHeight)
	if item.Kind == domain.MediaKindPhoto {
		frames := item.Frames(frameRate)
		fmt.Fprintf(&b, "loop=%d:%d:0,", frames, frames)
	}
	fmt.Fprintf(&b, "fps=%d", frameRate)

	return Stage{
		Inputs: []string{fmt.Sprintf("%d:v", index)},
		Filter: b.String(),
		Output: label,
	}
}
