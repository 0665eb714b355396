package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"http-server/application/http"
	"http-server/transport"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const maxAcceptBackoff = time.Second

type Server struct {
	l transport.ConnListener

	closeListener func()
	wg            sync.WaitGroup

	logger *slog.Logger
	opts   Options

	handle HandleFunc
	clock  clock.Clock
}

func New(
	l transport.ConnListener,
	logger *slog.Logger,
	clock clock.Clock,
	handle HandleFunc,
	opts Options,
) *Server {
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}

	s := &Server{
		l:      l,
		logger: logger,
		opts:   opts,
		handle: handle,
		clock:  clock,
	}

	return s
}

// Start runs the accept loop in the background.
// Every accepted connection gets its own goroutine, without limit.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.closeListener = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx)
	}()
}

func (s *Server) acceptLoop(ctx context.Context) {
	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	var backoff time.Duration
	for {
		conn, err := s.acceptConn(ctx)
		switch {
		case err == nil:
			backoff = 0
		case errors.Is(err, context.Canceled):
			return
		case errors.Is(err, transport.ErrConnListenerClosed):
			s.logger.Info("listener closed, stop accepting")
			return
		default:
			backoff = nextBackoff(backoff)
			s.logger.Error(
				"unexpected error when accepting connection",
				"error", err.Error(),
				"retry_in", backoff,
			)

			select {
			case <-ctx.Done():
				return
			case <-s.clock.After(backoff):
			}
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			conn.start(connCtx)
		}()
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	return min(2*d, maxAcceptBackoff)
}

func (s *Server) acceptConn(ctx context.Context) (*conn, error) {
	con, err := s.l.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listening for connection")
	}

	logger := s.logger.With("conn", con.RemoteAddr(), "conn_id", uuid.NewString())
	conn := &conn{
		con:     con,
		handle:  s.handle,
		decoder: http.NewRequestDecoder(logger, s.opts.Decode),
		opts:    s.opts,
		logger:  logger,
		clock:   s.clock,
	}

	return conn, nil
}

// Close stops accepting and waits for every connection to finish.
// Connections still waiting for their request are closed.
func (s *Server) Close() error {
	if s.closeListener != nil {
		s.closeListener()
	}
	s.wg.Wait()
	return nil
}
