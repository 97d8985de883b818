package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// BuildLogger returns a JSON logger on stderr at the given level name.
func BuildLogger(level string) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger returns a JSON logger writing to w. Unknown level names fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(w, ops))
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
