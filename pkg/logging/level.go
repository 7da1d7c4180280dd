package logging

import (
	"github.com/pkg/errors"
)

// Level represents a log severity level. Levels are ordered by verbosity, with
// higher values indicating more verbose logging, so they can be compared
// numerically.
type Level uint

const (
	// LevelDisabled disables logging entirely.
	LevelDisabled Level = iota
	// LevelError restricts logging to fatal errors.
	LevelError
	// LevelWarn adds non-fatal errors.
	LevelWarn
	// LevelInfo adds basic execution information.
	LevelInfo
	// LevelDebug adds detailed execution information.
	LevelDebug
	// LevelTrace adds low-level execution information.
	LevelTrace
)

// levelNames maps levels to their string-based representations.
var levelNames = [...]string{
	LevelDisabled: "disabled",
	LevelError:    "error",
	LevelWarn:     "warn",
	LevelInfo:     "info",
	LevelDebug:    "debug",
	LevelTrace:    "trace",
}

// NameToLevel converts a string-based representation of a log level to the
// corresponding Level value, returning a boolean indicating whether or not the
// representation was valid. Invalid names yield LevelDisabled.
func NameToLevel(name string) (Level, bool) {
	for level, candidate := range levelNames {
		if candidate == name {
			return Level(level), true
		}
	}
	return LevelDisabled, false
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText, allowing
// log levels to be decoded directly from configuration files.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := NameToLevel(string(text))
	if !ok {
		return errors.Errorf("unknown log level: %s", string(text))
	}
	*l = level
	return nil
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}
