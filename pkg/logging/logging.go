// Package logging configures structured logging for log/slog: colored text
// output with tint for humans, or JSON for log collectors.
//
// Usage:
//
//	logging.Setup("info", "text")            // from LOG_LEVEL / LOG_FORMAT values
//	logging.SetupWithLevel(slog.LevelDebug)  // colored text at an explicit level
//
// Levels: debug, info, warn, error (default: info).
// Formats: text, json (default: text).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup installs the default logger for the given level and format names.
func Setup(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	logger, err := New(os.Stderr, lvl, format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(newTint(os.Stderr, level))
}

// New builds a logger writing to w.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return newTint(w, level), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func newTint(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	)
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
