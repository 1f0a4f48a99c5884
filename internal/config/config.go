package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Whisper contains settings for the loaded inference engine.
type Whisper struct {
	// Model is the model name, e.g. "medium.en". The engine resolves it
	// to ggml-<name>.bin under CacheDir.
	Model string `toml:"model"`
	// Device selects the compute device: "cpu", "cuda", or "auto".
	Device string `toml:"device"`
	// ComputeType selects numeric precision: "int8", "float16", or "auto".
	ComputeType string `toml:"compute_type"`
	// Threads is the worker thread count handed to the engine.
	Threads int `toml:"threads"`
	// Language pins the transcription language.
	Language string `toml:"language"`
	// CacheDir holds downloaded ggml model files.
	CacheDir string `toml:"cache_dir"`
}

// Daemon contains socket and lifecycle settings.
type Daemon struct {
	// SocketPath is the Unix socket the daemon binds.
	SocketPath string `toml:"socket_path"`
	// LockPath guards against a second daemon instance. Defaults to
	// SocketPath + ".lock" when empty.
	LockPath string `toml:"lock_path"`
}

// History contains settings for the request journal.
type History struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for whisperd. It is
// immutable after Load returns.
type Config struct {
	Whisper Whisper `toml:"whisper"`
	Daemon  Daemon  `toml:"daemon"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// Environment variables honoured by Load. WHISPERD_MODEL and
// WHISPERD_SOCKET override the TOML file; WHISPER_DEVICE and
// WHISPER_COMPUTE feed the auto-detection sentinels.
const (
	EnvModel   = "WHISPERD_MODEL"
	EnvSocket  = "WHISPERD_SOCKET"
	EnvDevice  = "WHISPER_DEVICE"
	EnvCompute = "WHISPER_COMPUTE"
)

// DefaultConfigPath returns the absolute path to the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/whisperd/config.toml")
}

// Load locates, parses, and validates a configuration file, then layers
// environment overrides on top. Path fields come back expanded and
// normalized. An empty path means the default location; a missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvironment()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvironment() {
	if value, ok := os.LookupEnv(EnvModel); ok && strings.TrimSpace(value) != "" {
		c.Whisper.Model = value
	}
	if value, ok := os.LookupEnv(EnvSocket); ok && strings.TrimSpace(value) != "" {
		c.Daemon.SocketPath = value
	}
	if value, ok := os.LookupEnv(EnvDevice); ok && strings.TrimSpace(value) != "" {
		c.Whisper.Device = value
	}
	if value, ok := os.LookupEnv(EnvCompute); ok && strings.TrimSpace(value) != "" {
		c.Whisper.ComputeType = value
	}
}

// ModelPath returns the on-disk location of the configured ggml model.
func (c *Config) ModelPath() string {
	return filepath.Join(c.Whisper.CacheDir, fmt.Sprintf("ggml-%s.bin", c.Whisper.Model))
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
