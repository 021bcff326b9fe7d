package handler

import "github.com/philipp01105/logfan/core"

// MultiConsole fans console calls out to several consoles in order. It is
// a FullConsole; the extra level methods reach consoles that lack them
// through CallConsoleDynamic.
type MultiConsole struct {
	consoles []ConsoleLike
}

// NewMultiConsole creates a console that forwards to every non-nil console.
func NewMultiConsole(consoles ...ConsoleLike) *MultiConsole {
	m := &MultiConsole{consoles: make([]ConsoleLike, 0, len(consoles))}
	for _, c := range consoles {
		if c != nil {
			m.consoles = append(m.consoles, c)
		}
	}
	return m
}

// Log forwards to every console's Log
func (m *MultiConsole) Log(msg string, params ...any) {
	for _, c := range m.consoles {
		c.Log(msg, params...)
	}
}

// Warn forwards to every console's Warn
func (m *MultiConsole) Warn(msg string, params ...any) {
	for _, c := range m.consoles {
		c.Warn(msg, params...)
	}
}

// Error forwards to every console's Error
func (m *MultiConsole) Error(msg string, params ...any) {
	for _, c := range m.consoles {
		c.Error(msg, params...)
	}
}

// Verbose forwards at VerboseLevel
func (m *MultiConsole) Verbose(msg string, params ...any) { m.level(core.VerboseLevel, msg, params) }

// Trace forwards at TraceLevel
func (m *MultiConsole) Trace(msg string, params ...any) { m.level(core.TraceLevel, msg, params) }

// Debug forwards at DebugLevel
func (m *MultiConsole) Debug(msg string, params ...any) { m.level(core.DebugLevel, msg, params) }

// Info forwards at InfoLevel
func (m *MultiConsole) Info(msg string, params ...any) { m.level(core.InfoLevel, msg, params) }

// Fatal forwards at FatalLevel
func (m *MultiConsole) Fatal(msg string, params ...any) { m.level(core.FatalLevel, msg, params) }

func (m *MultiConsole) level(level core.Level, msg string, params []any) {
	for _, c := range m.consoles {
		CallConsoleLevel(c, level, msg, params)
	}
}

// Len returns the number of consoles
func (m *MultiConsole) Len() int {
	return len(m.consoles)
}
