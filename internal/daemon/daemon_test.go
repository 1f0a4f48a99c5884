package daemon_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"whisperd/internal/daemon"
	"whisperd/internal/engine"
	"whisperd/internal/history"
	"whisperd/internal/logging"
	"whisperd/internal/testsupport"
)

type fakeEngine struct {
	result *engine.Result
	err    error
	opts   engine.Options
}

func (f *fakeEngine) Transcribe(ctx context.Context, path string, opts engine.Options) (*engine.Result, error) {
	f.opts = opts
	return f.result, f.err
}

func (f *fakeEngine) Close() error { return nil }

func TestJoinSegments(t *testing.T) {
	cases := []struct {
		name     string
		segments []engine.Segment
		want     string
	}{
		{name: "empty", segments: nil, want: ""},
		{
			name: "trims and joins",
			segments: []engine.Segment{
				{Text: "  Hello,"},
				{Text: " world. "},
				{Text: "Again."},
			},
			want: "Hello, world. Again.",
		},
		{
			name: "skips blank segments",
			segments: []engine.Segment{
				{Text: "one"},
				{Text: "   "},
				{Text: "two"},
			},
			want: "one two",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daemon.JoinSegments(tc.segments); got != tc.want {
				t.Errorf("JoinSegments = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTranscribeAssemblesTranscript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := &fakeEngine{result: &engine.Result{
		Segments: []engine.Segment{{Text: " hello "}, {Text: " daemon "}},
	}}
	d, err := daemon.New(cfg, fake, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	text, err := d.Transcribe(context.Background(), "/tmp/a.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello daemon" {
		t.Errorf("text = %q", text)
	}

	// Fixed call configuration reaches the engine.
	if fake.opts.BeamSize != 5 || fake.opts.BestOf != 5 {
		t.Errorf("search options = %+v", fake.opts)
	}
	if fake.opts.Temperature != 0 {
		t.Errorf("temperature = %v, want deterministic 0", fake.opts.Temperature)
	}
	if !fake.opts.VADFilter {
		t.Error("VAD pre-filter disabled")
	}
	if fake.opts.Language != cfg.Whisper.Language {
		t.Errorf("language = %q, want %q", fake.opts.Language, cfg.Whisper.Language)
	}
}

func TestTranscribeJournalsOutcomes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}

	fake := &fakeEngine{result: &engine.Result{Segments: []engine.Segment{{Text: "logged"}}}}
	d, err := daemon.New(cfg, fake, store, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	defer d.Close()

	if _, err := d.Transcribe(context.Background(), "/tmp/ok.wav"); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	fake.result = nil
	fake.err = errors.New("decode fault")
	if _, err := d.Transcribe(context.Background(), "/tmp/bad.wav"); err == nil {
		t.Fatal("expected engine error to propagate")
	}

	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("journal entries = %d, want 2", len(entries))
	}
	if entries[0].Succeeded() || entries[0].Error != "decode fault" {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if !entries[1].Succeeded() || entries[1].Text != "logged" {
		t.Errorf("oldest entry = %+v", entries[1])
	}
}

func TestAcquireRejectsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := &fakeEngine{result: &engine.Result{}}

	first, err := daemon.New(cfg, fake, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	defer first.Close()

	second, err := daemon.New(cfg, fake, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	err = second.Acquire()
	if err == nil {
		t.Fatal("second Acquire should fail while the lock is held")
	}

	// Releasing the first lets a new instance start (idempotent restart).
	if err := first.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	waitForLock(t, second)
}

func waitForLock(t *testing.T, d *daemon.Daemon) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := d.Acquire(); err == nil {
			d.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("lock never became available")
}
