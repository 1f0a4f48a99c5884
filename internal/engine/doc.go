// Package engine owns the loaded speech-inference model. Loading is
// expensive and happens once per daemon lifetime; each call decodes a
// WAV file, optionally trims silence through the VAD pre-filter, and
// runs whisper.cpp inference under an exclusive lock.
package engine
