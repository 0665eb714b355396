package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"http-server/application/http/actor/server"
	"http-server/cmd/http-server/internal/entrypoint"
	"http-server/internal/logging"

	"github.com/facebookgo/flagenv"
)

const port = 4221

var (
	directory    = flag.String("directory", "", "directory to serve /files/ from")
	slogLevel    = flag.String("slog-level", "INFO", "logging level (see https://pkg.go.dev/log/slog#hdr-Levels)")
	readTimeout  = flag.Duration("read-timeout", 0, "per connection read deadline, zero means none")
	writeTimeout = flag.Duration("write-timeout", 0, "per connection write deadline, zero means none")
)

func main() {
	flagenv.Parse()
	flag.Parse()

	slog.SetDefault(slog.New(logging.Init(*slogLevel)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := entrypoint.Main(ctx, entrypoint.Options{
		Directory: *directory,
		Port:      port,
		Timeout: server.TimeoutOptions{
			ReadTimeout:  *readTimeout,
			WriteTimeout: *writeTimeout,
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
