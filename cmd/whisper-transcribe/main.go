// Command whisper-transcribe is a standalone one-shot transcriber. It
// loads the model fresh on every invocation, so it needs no running
// daemon; the cost is the full model load each time.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"whisperd/internal/config"
	"whisperd/internal/daemon"
	"whisperd/internal/engine"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: whisper-transcribe <audio-file> <model>")
		return 1
	}
	audioPath, model := args[0], args[1]

	if _, err := os.Stat(audioPath); err != nil {
		fmt.Fprintf(os.Stderr, "whisper-transcribe: audio file %s: %v\n", audioPath, err)
		return 1
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "whisper-transcribe: %v\n", err)
		return 1
	}
	cfg.Whisper.Model = model

	modelPath := model
	if filepath.Ext(model) != ".bin" {
		modelPath = cfg.ModelPath()
	}

	eng, err := engine.New(engine.Settings{
		ModelPath:   modelPath,
		Device:      cfg.Whisper.Device,
		ComputeType: cfg.Whisper.ComputeType,
		Threads:     cfg.Whisper.Threads,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "whisper-transcribe: %v\n", err)
		return 1
	}
	defer eng.Close()

	result, err := eng.Transcribe(context.Background(), audioPath, engine.DefaultOptions(cfg.Whisper.Language))
	if err != nil {
		fmt.Fprintf(os.Stderr, "whisper-transcribe: %v\n", err)
		return 1
	}

	fmt.Println(daemon.JoinSegments(result.Segments))
	return 0
}
