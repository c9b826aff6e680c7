// Package logging provides the shared structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the package-level logger. It discards everything until Setup is
// called, since the dialog owns the terminal.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Setup points L at w with the given minimum level.
func Setup(level slog.Level, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything
// else is treated as info.
func ParseLevel(s string) slog.Level {
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
