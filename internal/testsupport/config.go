package testsupport

import (
	"path/filepath"
	"testing"

	"whisperd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Whisper.CacheDir = filepath.Join(base, "models")
	cfg.Daemon.SocketPath = filepath.Join(base, "whisperd.sock")
	cfg.Daemon.LockPath = filepath.Join(base, "whisperd.lock")
	cfg.History.DBPath = filepath.Join(base, "history.db")
	cfg.Logging.File = ""

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithModel overrides the whisper model name on the test config.
func WithModel(model string) ConfigOption {
	return func(c *config.Config) {
		c.Whisper.Model = model
	}
}

// WithSocketPath overrides the daemon socket path on the test config.
func WithSocketPath(path string) ConfigOption {
	return func(c *config.Config) {
		c.Daemon.SocketPath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.History.DBPath)
}
