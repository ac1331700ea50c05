// Package logging builds the slog logger every run writes its diagnostics to.
// Output goes to stderr so that stdout stays free for "-o -".
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Config struct {
	Level slog.Level
	// JSON switches from key=value text to one JSON object per record.
	JSON bool
}

func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard drops every record.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

// Adjust applies -v and -q on top of the configured level.
func Adjust(level slog.Level, verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return max(level, slog.LevelWarn)
	}
	return level
}
