package server

import (
	"context"
	"log/slog"

	"http-server/application/http"
	"http-server/transport"

	"github.com/pkg/errors"
)

type HandleFunc func(c *HandleContext, request *http.Request) *http.Response

type HandleContext struct {
	ctx context.Context

	remoteAddr transport.Addr
	logger     *slog.Logger
}

func (c *HandleContext) doHandle(handle HandleFunc, request *http.Request) (res *http.Response, err error) {
	defer func() {
		if e := recover(); e != nil {
			res, err = nil, errors.Errorf("handler panicked: %v", e)
		}
	}()

	response := handle(c, request)
	if response == nil {
		return nil, errors.New("nil response is forbidden")
	}

	return response, nil
}

func (c *HandleContext) Context() context.Context   { return c.ctx }
func (c *HandleContext) RemoteAddr() transport.Addr { return c.remoteAddr }

// Logger is scoped to the connection.
func (c *HandleContext) Logger() *slog.Logger { return c.logger }
