package engine

import (
	"context"
	"time"

	"whisperd/internal/vad"
)

// Segment is one timed piece of transcript.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result carries the segments and metadata of one transcription call.
type Result struct {
	Segments []Segment
	Language string
	// Duration is the decoded audio length in seconds, measured before
	// the VAD pre-filter runs.
	Duration float64
}

// Options configures a single transcription call. Search and sampling
// controls are passed through to the backend unchanged.
type Options struct {
	Language    string
	BeamSize    int
	BestOf      int
	Temperature float64
	VADFilter   bool
	VADParams   vad.Params
}

// DefaultOptions returns the fixed per-request configuration the daemon
// uses: deterministic sampling and the speech pre-filter enabled.
func DefaultOptions(language string) Options {
	return Options{
		Language:    language,
		BeamSize:    5,
		BestOf:      5,
		Temperature: 0,
		VADFilter:   true,
		VADParams:   vad.Defaults(),
	}
}

// Engine is a loaded speech-inference model. Implementations are
// expensive to construct and cheap to reuse, and must be treated as
// unsafe for concurrent calls unless documented otherwise.
type Engine interface {
	// Transcribe decodes the audio file at path and runs inference.
	// An empty segment list is a valid result, not an error.
	Transcribe(ctx context.Context, path string, opts Options) (*Result, error)
	Close() error
}

// Settings configures engine construction. Device and ComputeType are
// advisory for the whisper.cpp backend, which selects its compute path
// at build time; they are validated and logged so operators see what
// was requested.
type Settings struct {
	ModelPath   string
	Device      string
	ComputeType string
	Threads     int
}
