package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the service logger is built.
type Options struct {
	Level   string
	Pretty  bool
	Service string
}

// NewLogger creates a zerolog logger writing to stdout.
// An unknown level falls back to info.
func NewLogger(opts Options) *zerolog.Logger {
	return newLogger(os.Stdout, opts)
}

func newLogger(w io.Writer, opts Options) *zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}

	logger := ctx.Logger()
	return &logger
}
