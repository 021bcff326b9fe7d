package logger

import (
	"strconv"
	"strings"

	"github.com/philipp01105/logfan/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	VerboseLevel = core.VerboseLevel
	TraceLevel   = core.TraceLevel
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InfoLevel
	WarnLevel    = core.WarnLevel
	ErrorLevel   = core.ErrorLevel
	FatalLevel   = core.FatalLevel
)

// LookupLevel converts a level name or number to a Level. Names are matched
// against the level name map as given, then upper-cased; "WARNING" is
// accepted for WARN.
func LookupLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Level(n), true
	}
	if l, ok := core.LevelNames().Lookup(s); ok {
		return l, true
	}
	name := strings.ToUpper(s)
	if name == "WARNING" {
		name = "WARN"
	}
	return core.LevelNames().Lookup(name)
}

// ParseLevel converts a string to a Level, falling back to InfoLevel
func ParseLevel(s string) Level {
	if l, ok := LookupLevel(s); ok {
		return l
	}
	return InfoLevel
}
