package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// parseLogLevel maps --log-level values to slog levels. Empty means warn.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("invalid --log-level %q (expected error|warn|info|debug)", s)
	}
}

// newLogger writes text records to w, which is stderr in normal use so
// that Markdown on stdout stays clean.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
