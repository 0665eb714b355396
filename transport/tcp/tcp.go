// Package tcp adapts operating system TCP sockets to [transport.Conn].
package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"http-server/transport"

	pkgerrors "github.com/pkg/errors"
)

// Any time in the past unblocks a pending Accept.
var aLongTimeAgo = time.Unix(1, 0)

type Listener struct {
	l *net.TCPListener
}

var _ transport.ConnListener = (*Listener)(nil)

// Listen binds every interface on port. Port 0 picks an ephemeral port.
func Listen(port uint16) (*Listener, error) {
	addr := net.JoinHostPort("", strconv.FormatUint(uint64(port), 10))

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "binding %s", addr)
	}

	return &Listener{l: l.(*net.TCPListener)}, nil
}

func (l *Listener) Addr() transport.Addr { return l.l.Addr() }

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := l.l.SetDeadline(time.Time{}); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListenerClosed
		}
		return nil, pkgerrors.Wrap(err, "resetting accept deadline")
	}

	stop := context.AfterFunc(ctx, func() {
		l.l.SetDeadline(aLongTimeAgo)
	})
	defer stop()

	c, err := l.l.AcceptTCP()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListenerClosed
		}
		return nil, pkgerrors.Wrap(err, "accepting tcp connection")
	}

	return &conn{c: c}, nil
}

func (l *Listener) Close() error {
	if err := l.l.Close(); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return transport.ErrConnListenerClosed
		}
		return err
	}
	return nil
}

type conn struct {
	c *net.TCPConn
}

var _ transport.Conn = (*conn)(nil)

func (c *conn) Read(p []byte) (int, error) {
	n, err := c.c.Read(p)
	return n, toTransportError(err)
}

func (c *conn) Write(p []byte) (int, error) {
	n, err := c.c.Write(p)
	return n, toTransportError(err)
}

func (c *conn) Close() error { return toTransportError(c.c.Close()) }

func (c *conn) LocalAddr() transport.Addr  { return c.c.LocalAddr() }
func (c *conn) RemoteAddr() transport.Addr { return c.c.RemoteAddr() }

func (c *conn) SetReadDeadLine(t time.Time)  { c.c.SetReadDeadline(t) }
func (c *conn) SetWriteDeadLine(t time.Time) { c.c.SetWriteDeadline(t) }

// toTransportError maps socket errors onto the transport sentinels.
// io.EOF is kept as-is: the peer finished writing.
func toTransportError(err error) error {
	switch {
	case err == nil, err == io.EOF:
		return err
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrDeadLineExceeded
	case errors.Is(err, net.ErrClosed):
		return transport.ErrConnClosed
	}
	return err
}
