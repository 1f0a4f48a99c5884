// Command whisperctl is the client CLI for a running whisperd daemon:
// it submits transcription requests, captures microphone audio, and
// browses the request journal.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
