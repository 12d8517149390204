package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only dumps after a generator panic
	LevelPhase               // driver + program boundaries
	LevelDetail              // generation passes
	LevelDebug               // everything including single variables
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeProgram
	case LevelDetail:
		return scope <= ScopePass
	case LevelDebug:
		return true
	default:
		// LevelError events only leave through a ring dump.
		return false
	}
}

// Retains reports whether an in-memory tracer should keep events of scope.
// At LevelError nothing is streamed, but passes are still buffered so a
// crash dump shows where generation stopped.
func (l Level) Retains(scope Scope) bool {
	if l == LevelError {
		return scope <= ScopePass
	}
	return l.ShouldEmit(scope)
}
