package domain

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusUploading JobStatus = "uploading"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the job has reached a final state. "uploading"
// is a transient engine-side state and is treated the same as pending.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// InputSpec is one ordered input of a render job. Options are per-input
// flags passed to the engine ahead of the input (photo loop, time limit).
type InputSpec struct {
	Source  string
	Options []string
}

// OutputSpec is the single named output target of a render job.
type OutputSpec struct {
	Name            string
	AudioCodec      string
	AudioBitrate    string
	VideoCodec      string
	VideoBitrate    string
	ConstantBitrate bool
	Options         []string
}

// RenderJob is an immutable description of one unit of rendering work.
// It is built once by a pure constructor and handed to the engine as-is;
// nothing mutates it after submission.
type RenderJob struct {
	Inputs []InputSpec
	Output OutputSpec
}

// EngineJob mirrors the engine's job entity as returned by submit and
// status calls.
type EngineJob struct {
	ID        int64             `json:"id"`
	Status    JobStatus         `json:"status"`
	Outputs   map[string]string `json:"outputs"`
	Logs      string            `json:"logs,omitempty"`
	CreatedAt string            `json:"created_at"`
}
