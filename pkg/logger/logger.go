package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func New(lvl string, addSource bool, environment string) *slog.Logger {
	return NewWithWriter(os.Stderr, lvl, addSource, environment)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, lvl string, addSource bool, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(lvl),
		AddSource: addSource,
	}

	var handler slog.Handler
	switch strings.ToLower(environment) {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("environment", environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
