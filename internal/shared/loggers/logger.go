package loggers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger = zerolog.Logger

func init() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// New creates a JSON logger on stdout at the given level ("debug", "info", ...).
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with a custom output, used by commands whose stdout carries results.
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger(), nil
}

// Component derives the logger of one part of the app: http, consumer, retention.
func Component(parent Logger, name string) Logger {
	return parent.With().Str(FieldComponent, name).Logger()
}

// Ctx returns the logger stored in ctx, or a disabled logger when there is none.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
