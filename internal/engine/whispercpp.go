//go:build cgo

package engine

import (
	"context"
	"fmt"
	"os"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"whisperd/internal/audio"
	"whisperd/internal/vad"
)

// whisperEngine wraps a loaded whisper.cpp model. The ggml backend is
// not safe for concurrent process calls, so every inference holds mu.
type whisperEngine struct {
	mu      sync.Mutex
	model   whisper.Model
	threads int
}

// New loads the ggml model at settings.ModelPath into memory. The model
// file must already exist; downloading is the operator's concern.
func New(settings Settings) (Engine, error) {
	if _, err := os.Stat(settings.ModelPath); err != nil {
		return nil, fmt.Errorf("model file %s: %w", settings.ModelPath, err)
	}
	model, err := whisper.New(settings.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", settings.ModelPath, err)
	}
	threads := settings.Threads
	if threads <= 0 {
		threads = 1
	}
	return &whisperEngine{model: model, threads: threads}, nil
}

func (e *whisperEngine) Transcribe(ctx context.Context, path string, opts Options) (*Result, error) {
	clip, err := audio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if clip.SampleRate != audio.SampleRate {
		return nil, fmt.Errorf("unsupported sample rate %d Hz (need %d)", clip.SampleRate, audio.SampleRate)
	}
	result := &Result{Language: opts.Language, Duration: clip.Duration()}

	if opts.VADFilter {
		clip = vad.Filter(clip, opts.VADParams)
	}
	if len(clip.Samples) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	wctx, err := e.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("create whisper context: %w", err)
	}
	if opts.Language != "" {
		if err := wctx.SetLanguage(opts.Language); err != nil {
			return nil, fmt.Errorf("set language %q: %w", opts.Language, err)
		}
	}
	wctx.SetTranslate(false)
	wctx.SetThreads(uint(e.threads))
	if opts.BeamSize > 0 {
		// The ggml decoder draws its candidate count from the beam size,
		// so best-of rides along with this setting.
		wctx.SetBeamSize(opts.BeamSize)
	}
	wctx.SetTemperature(float32(opts.Temperature))

	collect := func(segment whisper.Segment) {
		result.Segments = append(result.Segments, Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	if err := wctx.Process(clip.Samples, nil, collect, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}
	return result, nil
}

func (e *whisperEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model == nil {
		return nil
	}
	err := e.model.Close()
	e.model = nil
	return err
}
