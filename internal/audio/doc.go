// Package audio reads and writes the 16-bit PCM WAV clips the daemon
// works with: decode to mono float32 for inference, encode captured
// microphone samples back to disk.
package audio
