// Package report defines how classification failures reach the user: a
// Logger for the event log and a Dialog for blocking structure errors.
package report

import (
	"fmt"
	"strings"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger receives log events. args are free-form context values.
type Logger interface {
	Log(level Level, msg string, args ...any)
}

// Dialog shows a blocking notification to the user.
type Dialog interface {
	ShowUnrecoverableStructureError(installer, msg string, paths []string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Log(Level, string, ...any) {}
func (Nop) ShowUnrecoverableStructureError(string, string, []string) {}
