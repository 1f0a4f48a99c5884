package ipc

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"whisperd/internal/logging"
)

// errInvalidAudioPath is a wire contract: clients match on this string.
const errInvalidAudioPath = "Invalid audio path"

// drainTimeout bounds how long an oversized request may keep sending
// before the server gives up discarding its remainder.
const drainTimeout = time.Second

// handle serves exactly one request on conn and closes it on every
// path. No failure in here may reach the accept loop.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, MaxRequestBytes)
	n, err := conn.Read(buf)
	if n == 0 {
		// Client connected and closed without sending; nothing to answer.
		if err != nil && err != io.EOF {
			s.logger.Debug("read failed", logging.Error(err))
		}
		return
	}
	if n == MaxRequestBytes {
		// Unread request bytes would make the close reset the
		// connection and destroy the response; swallow them first.
		s.drain(conn)
		s.respond(conn, Failed(fmt.Sprintf("request exceeds %d byte limit", MaxRequestBytes)))
		return
	}

	var req Request
	if err := json.Unmarshal(buf[:n], &req); err != nil {
		s.respond(conn, Failed("malformed request: "+err.Error()))
		return
	}

	if req.AudioPath == "" {
		s.respond(conn, Failed(errInvalidAudioPath))
		return
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		s.respond(conn, Failed(errInvalidAudioPath))
		return
	}

	started := time.Now()
	text, err := s.transcribe(req.AudioPath)
	if err != nil {
		s.logger.Error("transcription failed",
			logging.String("audio_path", req.AudioPath),
			logging.Error(err))
		s.respond(conn, Failed(err.Error()))
		return
	}

	s.logger.Info("request served",
		logging.String("audio_path", req.AudioPath),
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("text_len", len(text)))
	s.respond(conn, Successful(text))
}

// drain discards whatever input remains on conn, bounded by a short
// deadline so a client that never stops writing cannot pin the daemon.
func (s *Server) drain(conn net.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(drainTimeout))
	_, _ = io.Copy(io.Discard, conn)
	_ = conn.SetReadDeadline(time.Time{})
}

// transcribe guards the engine call: a panic escaping the inference
// boundary becomes a per-request failure, never a daemon crash.
func (s *Server) transcribe(audioPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transcription fault: %v", r)
		}
	}()
	return s.transcriber.Transcribe(s.ctx, audioPath)
}

// respond writes the response and logs write failures; the connection
// is closed by the caller regardless.
func (s *Server) respond(conn net.Conn, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encode response", logging.Error(err))
		return
	}
	if _, err := conn.Write(payload); err != nil {
		s.logger.Warn("write response", logging.Error(err))
	}
}
