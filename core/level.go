package core

import (
	"strconv"
	"sync"
)

// Level is the severity of an event. Levels are plain integers on a sparse
// scale so applications can slot their own values between the named ones.
type Level int

const (
	// VerboseLevel for very chatty diagnostics (lowest named level)
	VerboseLevel Level = 100
	// TraceLevel for tracing execution paths
	TraceLevel Level = 200
	// DebugLevel for detailed debugging information
	DebugLevel Level = 300
	// InfoLevel for general informational messages
	InfoLevel Level = 400
	// WarnLevel for warning messages
	WarnLevel Level = 500
	// ErrorLevel for error messages
	ErrorLevel Level = 600
	// FatalLevel for fatal messages (highest named level)
	FatalLevel Level = 1000
)

// String returns the display name of the level from the shared name map.
func (l Level) String() string {
	return levelNames.Get(l)
}

// LevelCustomizer produces a display name for a level missing from a LevelNameMap.
type LevelCustomizer func(Level) string

// DefaultLevelCustomizer renders unmapped levels as "L-<n>".
func DefaultLevelCustomizer(l Level) string {
	return "L-" + strconv.Itoa(int(l))
}

// LevelNameMap maps levels to display names. It is safe for concurrent use.
type LevelNameMap struct {
	mu         sync.RWMutex
	names      map[Level]string
	customizer LevelCustomizer
}

// NewLevelNameMap creates a map holding the default names.
func NewLevelNameMap() *LevelNameMap {
	m := &LevelNameMap{}
	m.Reset()
	return m
}

func defaultLevelNames() map[Level]string {
	return map[Level]string{
		VerboseLevel: "VERBOSE",
		TraceLevel:   "TRACE",
		DebugLevel:   "DEBUG",
		InfoLevel:    "INFO",
		WarnLevel:    "WARN",
		ErrorLevel:   "ERROR",
		FatalLevel:   "FATAL",
	}
}

// Get returns the name for level, falling back to the customizer.
func (m *LevelNameMap) Get(l Level) string {
	m.mu.RLock()
	name, ok := m.names[l]
	customize := m.customizer
	m.mu.RUnlock()
	if ok {
		return name
	}
	return customize(l)
}

// Update merges name -> level pairs into the map.
func (m *LevelNameMap) Update(names map[string]Level) {
	m.mu.Lock()
	for name, l := range names {
		m.names[l] = name
	}
	m.mu.Unlock()
}

// Lookup finds the level registered under name.
func (m *LevelNameMap) Lookup(name string) (Level, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for l, n := range m.names {
		if n == name {
			return l, true
		}
	}
	return 0, false
}

// SetCustomizer installs the fallback for unmapped levels. Nil restores
// DefaultLevelCustomizer.
func (m *LevelNameMap) SetCustomizer(fn LevelCustomizer) {
	if fn == nil {
		fn = DefaultLevelCustomizer
	}
	m.mu.Lock()
	m.customizer = fn
	m.mu.Unlock()
}

// Reset restores the default names and customizer.
func (m *LevelNameMap) Reset() {
	m.mu.Lock()
	m.names = defaultLevelNames()
	m.customizer = DefaultLevelCustomizer
	m.mu.Unlock()
}

var levelNames = NewLevelNameMap()

// LevelNames returns the process-wide level name map used by Level.String
// and the default formatters.
func LevelNames() *LevelNameMap {
	return levelNames
}
