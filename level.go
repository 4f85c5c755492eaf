package logmux

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Level is a log severity threshold. The numeric values mirror [log/slog]
// semantics so levels compare and convert directly.
type Level int

const (
	// LevelDebug logs everything.
	LevelDebug Level = -4
	// LevelInfo logs informational messages and above.
	LevelInfo Level = 0
	// LevelWarn logs warnings and errors.
	LevelWarn Level = 4
	// LevelError logs errors only.
	LevelError Level = 8
)

// ErrUnknownLevel indicates an unrecognized log level string.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel parses a level string and returns the corresponding [Level].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// String returns the lowercase name of the level. Levels between the named
// constants render in slog notation, e.g. "info+2".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}

	return strings.ToLower(slog.Level(l).String())
}

// Slog converts the level to a [slog.Level].
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}

// AllLevelStrings returns all named level strings, ordered from least to most
// severe. Useful for CLI flag help and shell completions.
func AllLevelStrings() []string {
	return []string{"debug", "info", "warn", "error"}
}
