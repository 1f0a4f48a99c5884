// Command whisperd is the resident transcription daemon. It loads the
// whisper model once at startup, then answers transcription requests
// over a Unix domain socket until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"whisperd/internal/config"
	"whisperd/internal/daemon"
	"whisperd/internal/engine"
	"whisperd/internal/history"
	"whisperd/internal/ipc"
	"whisperd/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	logger, closeLog, err := logging.NewFile(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}, cfg.Logging.File)
	if err != nil {
		log.Printf("init logger: %v", err)
		return 1
	}
	defer closeLog.Close()

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.DBPath)
		if err != nil {
			logger.Warn("history store unavailable, continuing without journal", logging.Error(err))
			store = nil
		}
	}

	// Model load happens before the socket exists, so clients never
	// reach a daemon that cannot serve.
	logger.Info("loading model",
		logging.String("model", cfg.Whisper.Model),
		logging.String("device", cfg.Whisper.Device),
		logging.String("compute_type", cfg.Whisper.ComputeType))
	eng, err := engine.New(engine.Settings{
		ModelPath:   cfg.ModelPath(),
		Device:      cfg.Whisper.Device,
		ComputeType: cfg.Whisper.ComputeType,
		Threads:     cfg.Whisper.Threads,
	})
	if err != nil {
		logger.Error("load model", logging.Error(err))
		return 1
	}

	d, err := daemon.New(cfg, eng, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return 1
	}
	defer d.Close()

	if err := d.Acquire(); err != nil {
		logger.Error("daemon startup", logging.Error(err))
		return 1
	}

	srv, err := ipc.NewServer(ctx, cfg.Daemon.SocketPath, d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return 1
	}
	srv.Serve()
	logger.Info("whisperd ready", logging.String("socket", cfg.Daemon.SocketPath))

	<-ctx.Done()
	logger.Info("whisperd shutting down")
	srv.Close()
	return 0
}
