package entrypoint

import (
	"context"
	"log/slog"
	"os"

	"http-server/application/http"
	"http-server/application/http/actor/server"
	"http-server/application/route"
	"http-server/transport/tcp"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

var ErrInvalidDirectory = errors.New("not a valid directory")

type Options struct {
	// Directory is where /files/ reads from. Empty disables the route.
	Directory string
	Port      uint16

	Timeout server.TimeoutOptions
}

// Main serves until ctx is done.
func Main(ctx context.Context, opts Options) error {
	if err := validateDirectory(opts.Directory); err != nil {
		return err
	}

	l, err := tcp.Listen(opts.Port)
	if err != nil {
		return errors.Wrapf(err, "listening on port %d", opts.Port)
	}
	defer l.Close()

	logger := slog.Default()

	directory := opts.Directory
	if directory == "" {
		directory = "(none)"
	}
	logger.Info("server started", "addr", l.Addr().String(), "directory", directory)

	router := route.New(opts.Directory, logger)
	srv := server.New(l, logger, clock.New(), router.Handle, server.Options{
		BufferSize: server.DefaultBufferSize,
		Decode:     http.DefaultDecodeOptions,
		Timeout:    opts.Timeout,
	})
	srv.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	return srv.Close()
}

func validateDirectory(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(ErrInvalidDirectory, "%q", dir)
	}

	return nil
}
