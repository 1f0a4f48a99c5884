// Package ipc exposes the daemon over a Unix domain socket and ships
// the matching client used by the CLI.
//
// The protocol is deliberately small: one JSON request per connection,
// one bounded read (MaxRequestBytes), one JSON response, then close.
// The server owns socket lifecycle — stale-file removal, a backlog of
// one, world read/write permissions — and serializes all handling, so
// the inference engine never sees two calls at once.
package ipc
