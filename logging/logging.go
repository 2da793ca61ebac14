package logging

import (
	"io"
	"log/slog"
	"strings"

	"health-tracker/config"
)

// Component names attached to every logger handed out by New.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAuth    = "auth"
	ComponentEntries = "entries"
	ComponentStorage = "storage"
)

// New builds the root logger described by conf and installs it as the slog
// default.
func New(w io.Writer, conf config.Logger) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(conf.Level)}

	var handler slog.Handler
	if conf.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Error renders err as its message only. Errors wrapped with pkg/errors would
// otherwise print their stack trace through the text handler.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
