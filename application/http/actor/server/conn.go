package server

import (
	"context"
	"io"
	"log/slog"

	"http-server/application/http"
	"http-server/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// ErrEmptyRead is returned when the peer sent nothing before closing.
var ErrEmptyRead = errors.New("nothing to read")

// conn serves exactly one request, then closes.
type conn struct {
	con transport.Conn

	handle  HandleFunc
	decoder *http.RequestDecoder
	clock   clock.Clock

	logger *slog.Logger

	opts Options
}

func (c *conn) start(ctx context.Context) {
	defer func() {
		c.logger.Debug("closing connection")
		if err := c.con.Close(); err != nil && !errors.Is(err, transport.ErrConnClosed) {
			c.logger.Error("error when closing connection", "error", err)
		}
	}()

	err := c.serve(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		// no-op.
	case errors.Is(err, ErrEmptyRead):
		c.logger.Debug("connection closed without request")
	case errors.Is(err, transport.ErrDeadLineExceeded):
		c.logger.Info("deadline exceeded", "error", err)
	case errors.Is(err, transport.ErrConnClosed):
		c.logger.Error("unexpected connection closure")
	default:
		c.logger.Error("failed to serve connection", "error", err)
	}
}

func (c *conn) serve(ctx context.Context) error {
	raw, err := c.readRequest(ctx)
	if err != nil {
		return errors.Wrap(err, "reading request")
	}

	var request http.Request
	if err := c.decoder.Decode(raw, &request); err != nil {
		return errors.Wrap(err, "decoding request")
	}

	hctx := &HandleContext{
		ctx:        ctx,
		remoteAddr: c.con.RemoteAddr(),
		logger:     c.logger,
	}
	response, err := hctx.doHandle(c.handle, &request)
	if err != nil {
		return errors.Wrap(err, "unexpected error while handling request")
	}

	if err := c.writeResponse(response); err != nil {
		return errors.Wrap(err, "writing response")
	}

	return nil
}

// readRequest reads once. Whatever the peer managed to send in that read is
// the whole request.
func (c *conn) readRequest(ctx context.Context) ([]byte, error) {
	if timeout := c.opts.Timeout.ReadTimeout; timeout > 0 {
		c.con.SetReadDeadLine(c.clock.Now().Add(timeout))
	}

	// Shutting down while waiting for the peer unblocks the read.
	stop := context.AfterFunc(ctx, func() { c.con.Close() })

	buf := make([]byte, c.opts.BufferSize)
	n, err := c.con.Read(buf)

	if !stop() {
		return nil, ctx.Err()
	}

	if n <= 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, ErrEmptyRead
		}
		return nil, err
	}

	return buf[:n], nil
}

func (c *conn) writeResponse(response *http.Response) error {
	if timeout := c.opts.Timeout.WriteTimeout; timeout > 0 {
		c.con.SetWriteDeadLine(c.clock.Now().Add(timeout))
	}

	return http.NewResponseEncoder(c.con).Encode(*response)
}
