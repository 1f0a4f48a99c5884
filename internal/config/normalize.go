package config

import (
	"fmt"
	"os"
	"strings"

	"whisperd/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeWhisper(); err != nil {
		return err
	}
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeWhisper() error {
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultModel
	}

	c.Whisper.Device = resolveDevice(c.Whisper.Device)
	c.Whisper.ComputeType = resolveCompute(c.Whisper.ComputeType, c.Whisper.Device)

	if c.Whisper.Threads <= 0 {
		c.Whisper.Threads = defaultThreads
	}

	if strings.TrimSpace(c.Whisper.Language) == "" {
		c.Whisper.Language = defaultLanguage
	}
	lang, err := language.Normalize(c.Whisper.Language)
	if err != nil {
		return fmt.Errorf("whisper.language: %w", err)
	}
	c.Whisper.Language = lang

	if strings.TrimSpace(c.Whisper.CacheDir) == "" {
		c.Whisper.CacheDir = defaultCacheDir
	}
	if c.Whisper.CacheDir, err = expandPath(c.Whisper.CacheDir); err != nil {
		return fmt.Errorf("whisper.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDaemon() error {
	c.Daemon.SocketPath = strings.TrimSpace(c.Daemon.SocketPath)
	if c.Daemon.SocketPath == "" {
		c.Daemon.SocketPath = defaultSocketPath
	}
	var err error
	if c.Daemon.SocketPath, err = expandPath(c.Daemon.SocketPath); err != nil {
		return fmt.Errorf("daemon.socket_path: %w", err)
	}
	if strings.TrimSpace(c.Daemon.LockPath) == "" {
		c.Daemon.LockPath = c.Daemon.SocketPath + ".lock"
	}
	if c.Daemon.LockPath, err = expandPath(c.Daemon.LockPath); err != nil {
		return fmt.Errorf("daemon.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.DBPath) == "" {
		c.History.DBPath = defaultHistoryDB
	}
	var err error
	if c.History.DBPath, err = expandPath(c.History.DBPath); err != nil {
		return fmt.Errorf("history.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// resolveDevice maps the "auto" sentinel to a concrete device. An
// accelerator is preferred whenever the CUDA runtime advertises one.
func resolveDevice(device string) string {
	device = strings.ToLower(strings.TrimSpace(device))
	if device != "" && device != "auto" {
		return device
	}
	if os.Getenv("CUDA_VISIBLE_DEVICES") != "" {
		return "cuda"
	}
	return "cpu"
}

// resolveCompute maps the "auto" sentinel to a concrete precision:
// mixed int8/float16 on an accelerator, int8 on the general-purpose
// path.
func resolveCompute(compute, device string) string {
	compute = strings.ToLower(strings.TrimSpace(compute))
	if compute != "" && compute != "auto" {
		return compute
	}
	if device == "cuda" {
		return "int8_float16"
	}
	return "int8"
}
