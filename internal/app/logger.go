package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/triplingo-backend/internal/config"
)

// NewLogger builds the process logger and installs it as slog's default.
// Format "json" is meant for production; anything else gives text output
// with source locations. Unknown levels fall back to info.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With(slog.String("app", "triplingo"))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
