package streampot

import "github.com/omzi/memoire/internal/domain"

// action is one entry of the engine's job submission payload, mirroring
// its fluent command names.
type action struct {
	Name  string `json:"name"`
	Value []any  `json:"value"`
}

// actionsForJob flattens an immutable RenderJob into the engine's ordered
// action list: inputs with their per-input options first, then the global
// codec settings, output options and the single named output target.
func actionsForJob(job *domain.RenderJob) []action {
	actions := make([]action, 0, 2*len(job.Inputs)+6)
	add := func(name string, values ...any) {
		actions = append(actions, action{Name: name, Value: values})
	}

	for _, in := range job.Inputs {
		add("input", in.Source)
		if len(in.Options) > 0 {
			add("addInputOptions", in.Options)
		}
	}

	out := job.Output
	add("audioCodec", out.AudioCodec)
	add("audioBitrate", out.AudioBitrate)
	add("videoCodec", out.VideoCodec)
	add("videoBitrate", out.VideoBitrate, out.ConstantBitrate)
	add("outputOptions", out.Options)
	add("output", out.Name)

	return actions
}
