package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger from the general section.
func NewLogger(g GeneralConfig) *slog.Logger {
	return newLogger(os.Stderr, g)
}

func newLogger(w io.Writer, g GeneralConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(g.LogLevel, g.Debug)}
	if strings.EqualFold(g.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
