// Package history journals served transcription requests in SQLite so
// the CLI can show what the daemon has been doing. Recording is
// best-effort: a journal failure never fails the request that caused it.
package history
