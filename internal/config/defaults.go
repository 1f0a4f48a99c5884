package config

const (
	defaultModel      = "medium.en"
	defaultSocketPath = "/tmp/whisperd.sock"
	defaultDevice     = "auto"
	defaultCompute    = "auto"
	defaultThreads    = 2
	defaultLanguage   = "en"
	defaultCacheDir   = "~/.cache/whisperd/models"
	defaultHistoryDB  = "~/.local/share/whisperd/history.db"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Whisper: Whisper{
			Model:       defaultModel,
			Device:      defaultDevice,
			ComputeType: defaultCompute,
			Threads:     defaultThreads,
			Language:    defaultLanguage,
			CacheDir:    defaultCacheDir,
		},
		Daemon: Daemon{
			SocketPath: defaultSocketPath,
		},
		History: History{
			Enabled: true,
			DBPath:  defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
