// Package config loads, normalizes, and validates whisperd configuration.
//
// It supplies repository defaults, reads an optional TOML file, expands
// tilde paths, and layers environment overrides (WHISPERD_MODEL,
// WHISPERD_SOCKET, WHISPER_DEVICE, WHISPER_COMPUTE) on top. The "auto"
// sentinels for device and compute type resolve here, so every other
// package observes concrete values only.
//
// Always obtain settings through this package; the returned Config is
// immutable after Load.
package config
