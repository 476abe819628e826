package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for the given environment and level,
// normally cfg.Environment and cfg.LogLevel. Production uses a JSON
// handler; otherwise text. level may be: debug, info, warn, error
// (default: info).
func NewLogger(environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch s {
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
