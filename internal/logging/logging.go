// Package logging provides a shared, structured logger for the text-utils
// application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level is controlled at startup via the
// TEXTUTILS_LOG_LEVEL environment variable (debug, info, warn, error).
// If unset, the default level is INFO.
//
// Usage:
//
//	log := logging.New("settings")     // creates a logger tagged with component="settings"
//	log.Info("loaded settings", "path", p)
//	log.Error("failed to save", "error", err)
//
// Output goes to stderr unless TEXTUTILS_LOG_FILE names a file, in which case
// entries are appended there. The terminal UI owns the alt screen, so pointing
// logs at a file is the usual way to watch them while the app runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every log entry
// produced by the returned logger. If component is empty, the base logger is
// returned without any additional attributes.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(openOutput(os.Getenv("TEXTUTILS_LOG_FILE")), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("TEXTUTILS_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// openOutput resolves the log destination. An unusable log file falls back
// to stderr rather than dropping entries.
func openOutput(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
