package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"log/slog"

	"golang.org/x/sys/unix"

	"whisperd/internal/logging"
)

// listenBacklog is deliberately 1: a single pending connection may
// queue while a request is being served; further simultaneous attempts
// are refused at the OS level.
const listenBacklog = 1

// socketMode makes the endpoint usable by every local process.
const socketMode = 0o666

// Transcriber is the loaded-resource capability the server invokes,
// one call at a time.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Server serves one transcription request per connection over a Unix
// domain socket. Connection handling is strictly serial.
type Server struct {
	path        string
	transcriber Transcriber
	logger      *slog.Logger
	listener    net.Listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer removes any stale socket at path, binds a fresh one with a
// backlog of one, and opens it to all local users. The transcriber must
// be fully initialized before this is called.
func NewServer(ctx context.Context, path string, t Transcriber, logger *slog.Logger) (*Server, error) {
	if t == nil {
		return nil, errors.New("ipc server requires a transcriber")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := listen(path, listenBacklog)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}
	if err := os.Chmod(path, socketMode); err != nil {
		listener.Close()
		_ = os.RemoveAll(path)
		return nil, fmt.Errorf("chmod socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:        path,
		transcriber: t,
		logger:      logger,
		listener:    listener,
		ctx:         serverCtx,
		cancel:      cancel,
	}, nil
}

// listen builds the listener by hand so the backlog is exactly what we
// asked for; net.Listen would hand the kernel its own default.
func listen(path string, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind %s: %w", path, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen: %w", err)
	}

	file := os.NewFile(uintptr(fd), path)
	listener, err := net.FileListener(file)
	// FileListener duplicates the descriptor, so the original is closed
	// either way.
	file.Close()
	if err != nil {
		_ = os.RemoveAll(path)
		return nil, fmt.Errorf("file listener: %w", err)
	}
	return listener, nil
}

// Serve starts the accept loop and returns immediately. Requests are
// fully serialized: a response is always written before the next
// connection is accepted.
func (s *Server) Serve() {
	s.logger.Info("listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.handle(conn)
		}
	}()
}

// Close stops accepting, waits for an in-flight request to finish its
// response, and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}
