package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"whisperd/internal/audio"
)

// WriteWAV writes a mono 16 kHz sine-tone WAV of the requested duration in
// milliseconds and returns its path. A duration <= 0 produces a single frame.
func WriteWAV(t testing.TB, dir, name string, durationMs int) string {
	t.Helper()

	frames := durationMs * audio.SampleRate / 1000
	if frames <= 0 {
		frames = 1
	}
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(8192 * math.Sin(2*math.Pi*440*float64(i)/audio.SampleRate))
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := audio.WriteFile(path, samples, audio.SampleRate); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFile fills the target path with the given bytes, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
