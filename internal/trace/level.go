package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelBasic traces session and task-group boundaries.
	LevelBasic
	// LevelDetail additionally traces per-task events.
	LevelDetail
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelBasic:
		return "basic"
	case LevelDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "basic", "BASIC":
		return LevelBasic, nil
	case "detail", "DETAIL":
		return LevelDetail, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|basic|detail)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelBasic:
		return scope <= ScopeSession
	case LevelDetail:
		return true
	}
	return false
}
