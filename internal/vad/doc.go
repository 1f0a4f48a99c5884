// Package vad trims non-speech audio before inference using the WebRTC
// voice activity detector. Span assembly (minimum-silence merging and
// speech padding) is pure Go; only frame classification needs cgo, and
// builds without it pass audio through untouched.
package vad
