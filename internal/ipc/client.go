package ipc

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"
)

const dialTimeout = 2 * time.Second

// Client sends one-shot requests to a running daemon. Each call opens
// its own connection, matching the one-request-per-connection protocol.
type Client struct {
	path string
}

// NewClient returns a client for the daemon socket at path.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Transcribe submits an audio path and returns the daemon's response.
// It blocks for as long as the inference call runs; the daemon imposes
// no timeout and neither do we.
func (c *Client) Transcribe(audioPath string) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon at %s: %w", c.path, err)
	}
	defer conn.Close()

	payload, err := json.Marshal(Request{AudioPath: audioPath})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	// The server writes exactly one response and closes.
	raw, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("daemon closed connection without responding")
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}
