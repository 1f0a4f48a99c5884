package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"whisperd/internal/history"
	"whisperd/internal/testsupport"
)

func TestTranscribeCommandPrintsTranscript(t *testing.T) {
	fake := &scriptedTranscriber{}
	fake.set("hello from the daemon", nil)
	env := setupCLITestEnv(t, fake)

	audio := testsupport.WriteWAV(t, t.TempDir(), "sample.wav", 200)
	out, _, err := runCLI(t, []string{"transcribe", audio}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	requireContains(t, out, "hello from the daemon")
}

func TestTranscribeCommandReportsDaemonFailure(t *testing.T) {
	fake := &scriptedTranscriber{}
	fake.set("", errors.New("model choked"))
	env := setupCLITestEnv(t, fake)

	audio := testsupport.WriteWAV(t, t.TempDir(), "sample.wav", 200)
	_, _, err := runCLI(t, []string{"transcribe", audio}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected failure response to surface as an error")
	}
}

func TestTranscribeCommandRequiresArgument(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"transcribe"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected usage error without an audio path")
	}
}

func TestHistoryListAndClear(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.RecordEntry(t, store, history.Entry{
		AudioPath: filepath.Join("/tmp", "meeting.wav"),
		Text:      "quarterly numbers look fine",
		Elapsed:   420 * time.Millisecond,
	})
	testsupport.RecordEntry(t, store, history.Entry{
		AudioPath: filepath.Join("/tmp", "missing.wav"),
		Error:     "Invalid audio path",
	})

	out, _, err := runCLI(t, []string{"history", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "meeting.wav")
	requireContains(t, out, "quarterly numbers look fine")
	requireContains(t, out, "Invalid audio path")
	requireContains(t, out, "failed")

	out, _, err = runCLI(t, []string{"history", "clear"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 2 entries")

	out, _, err = runCLI(t, []string{"history", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history list after clear: %v", err)
	}
	requireContains(t, out, "No transcription requests recorded yet.")
}

func TestHistoryListHonorsLimit(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	store := testsupport.MustOpenStore(t, env.cfg)
	for i := 0; i < 5; i++ {
		testsupport.RecordEntry(t, store, history.Entry{
			AudioPath: filepath.Join("/tmp", "clip.wav"),
			Text:      "entry",
		})
	}

	out, _, err := runCLI(t, []string{"history", "list", "--limit", "2"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if got := strings.Count(out, "clip.wav"); got != 2 {
		t.Errorf("rows shown = %d, want 2", got)
	}
}

func TestRecordCommandRegistered(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"record"})
	if err != nil {
		t.Fatalf("record command not registered: %v", err)
	}
	for _, name := range []string{"output", "duration", "device", "transcribe"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("record command missing --%s flag", name)
		}
	}
}

func TestTruncateKeepsShortValues(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	long := "this transcript is much longer than the preview width allows"
	got := truncate(long, 20)
	if len(got) > len(long) || got == long {
		t.Errorf("long value not truncated: %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("日本語の文字起こし", 10)
	got := truncate(long, 20)
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if count := utf8.RuneCountInString(got); count != 20 {
		t.Errorf("rune count = %d, want 20", count)
	}
}
