// Package logging wraps log/slog with whisperd conventions.
//
// It centralizes level and format parsing, console versus JSON handler
// selection, optional log-file duplication, and the attribute helpers
// used throughout the daemon so call sites never import slog directly.
// Tests use NewNop to silence output without changing code paths.
package logging
