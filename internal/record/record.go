// Package record captures microphone audio into mono 16 kHz WAV files
// suitable for transcription. Capture uses PortAudio and therefore
// requires cgo; builds without it get a recorder that reports
// unavailability instead of failing at link time.
package record

import (
	"context"
	"fmt"
	"time"

	"whisperd/internal/audio"
)

// Options controls a single capture session.
type Options struct {
	// Duration bounds the recording. Zero means record until the
	// context is cancelled.
	Duration time.Duration
	// Device selects an input device by name substring. Empty picks
	// the system default.
	Device string
}

// Capture records from the microphone and writes the result to path.
// It returns the number of samples written.
func Capture(ctx context.Context, path string, opts Options) (int, error) {
	samples, err := capture(ctx, opts)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("no audio captured")
	}
	if err := audio.WriteFile(path, samples, audio.SampleRate); err != nil {
		return 0, err
	}
	return len(samples), nil
}
