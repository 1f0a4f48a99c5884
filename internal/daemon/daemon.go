package daemon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"whisperd/internal/config"
	"whisperd/internal/engine"
	"whisperd/internal/history"
	"whisperd/internal/logging"
)

// Daemon owns the loaded inference engine for the life of the process
// and enforces single-instance execution. It is the Transcriber the IPC
// server invokes, one request at a time.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	engine engine.Engine
	store  *history.Store
	opts   engine.Options
	lock   *flock.Flock
}

// New constructs a daemon around an already-loaded engine. The history
// store may be nil when journaling is disabled.
func New(cfg *config.Config, eng engine.Engine, store *history.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || eng == nil {
		return nil, errors.New("daemon requires config and engine")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Daemon{
		cfg:    cfg,
		logger: logger,
		engine: eng,
		store:  store,
		opts:   engine.DefaultOptions(cfg.Whisper.Language),
		lock:   flock.New(cfg.Daemon.LockPath),
	}, nil
}

// Acquire takes the single-instance lock. It fails fast when another
// daemon already holds it.
func (d *Daemon) Acquire() error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !ok {
		return errors.New("another whisperd instance is already running")
	}
	return nil
}

// Transcribe runs one inference call and assembles the transcript. The
// outcome is journaled to the history store on a best-effort basis.
func (d *Daemon) Transcribe(ctx context.Context, audioPath string) (string, error) {
	started := time.Now()
	result, err := d.engine.Transcribe(ctx, audioPath, d.opts)

	entry := history.Entry{
		AudioPath: audioPath,
		Elapsed:   time.Since(started),
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		entry.Text = JoinSegments(result.Segments)
	}
	d.record(ctx, entry)

	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

func (d *Daemon) record(ctx context.Context, entry history.Entry) {
	if d.store == nil {
		return
	}
	if _, err := d.store.Record(ctx, entry); err != nil {
		d.logger.Warn("history record failed", logging.Error(err))
	}
}

// Close releases the lock and unloads the engine.
func (d *Daemon) Close() error {
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	var errs []error
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.engine.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// JoinSegments builds the final transcript: each segment text trimmed
// of surrounding whitespace, joined with single spaces. An empty
// segment list yields an empty string.
func JoinSegments(segments []engine.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
