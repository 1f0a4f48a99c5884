package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"whisperd/internal/record"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var (
		output     string
		duration   time.Duration
		device     string
		transcribe bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture microphone audio to a WAV file",
		Long: `Capture microphone audio to a mono 16 kHz WAV file. Recording stops
after --duration, or on Ctrl-C when no duration is given. With
--transcribe the captured file is sent to the daemon afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = fmt.Sprintf("whisperctl-%s.wav", time.Now().Format("20060102-150405"))
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			recCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.ErrOrStderr(), "Recording... press Ctrl-C to stop")
			samples, err := record.Capture(recCtx, path, record.Options{
				Duration: duration,
				Device:   device,
			})
			if err != nil {
				return fmt.Errorf("record audio: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d samples to %s\n", samples, path)

			if !transcribe {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := client.Transcribe(path)
			if err != nil {
				return fmt.Errorf("connect to daemon: %w", err)
			}
			if !resp.Success {
				return errors.New(resp.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV path (default: timestamped file in the current directory)")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Stop recording after this long (0 = until interrupted)")
	cmd.Flags().StringVar(&device, "device", "", "Input device name substring (default: system default)")
	cmd.Flags().BoolVarP(&transcribe, "transcribe", "t", false, "Send the recording to the daemon and print the transcript")
	return cmd
}

func newDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available audio input devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := record.Devices()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(os.Stderr, "No input devices found.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
