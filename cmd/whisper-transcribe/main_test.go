package main

import (
	"path/filepath"
	"testing"
)

func TestRunRejectsWrongArgCount(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "none", args: nil},
		{name: "one", args: []string{"a.wav"}},
		{name: "three", args: []string{"a.wav", "medium.en", "extra"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := run(tc.args); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}

func TestRunRejectsMissingAudioFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such.wav")
	if code := run([]string{missing, "medium.en"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
