// Package logging builds the process-wide slog handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Init returns a text handler writing to stderr at the given level.
// An invalid level falls back to INFO.
func Init(level string) slog.Handler {
	return newHandler(os.Stderr, level)
}

func newHandler(w io.Writer, level string) slog.Handler {
	var programLevel slog.Level
	if err := (&programLevel).UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %s: %v, using info\n", level, err)
		programLevel = slog.LevelInfo
	}

	leveler := &slog.LevelVar{}
	leveler.Set(programLevel)

	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: leveler,
	})
}
