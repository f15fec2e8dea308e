package app

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// ValidateLogLevel reports whether levelStr names a supported log level.
func ValidateLogLevel(levelStr string) error {
	switch levelStr {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", levelStr)
}

// ValidateLogFormat reports whether formatStr names a supported log format.
func ValidateLogFormat(formatStr string) error {
	if formatStr == "text" || formatStr == "json" {
		return nil
	}
	return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", formatStr)
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
