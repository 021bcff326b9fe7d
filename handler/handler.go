package handler

import (
	"github.com/philipp01105/logfan/core"
)

// EventListener is a listener for routed events.
type EventListener = core.Listener[*core.Event]

// ConsoleLike is the minimal console surface events can be mirrored to.
type ConsoleLike interface {
	Log(msg string, params ...any)
	Warn(msg string, params ...any)
	Error(msg string, params ...any)
}

// FullConsole is an optional extension of ConsoleLike with one method per
// named level.
type FullConsole interface {
	ConsoleLike
	Verbose(msg string, params ...any)
	Trace(msg string, params ...any)
	Debug(msg string, params ...any)
	Info(msg string, params ...any)
	Fatal(msg string, params ...any)
}

// Emitter is anything that accepts raw emissions, such as a transport.
type Emitter interface {
	Emit(level core.Level, tag, message string, params []any) error
}

// CallConsoleDynamic routes msg to target by severity: Error for levels at
// or above ErrorLevel, Warn at or above WarnLevel, Log otherwise.
func CallConsoleDynamic(target ConsoleLike, level core.Level, msg string, params []any) {
	switch {
	case level >= core.ErrorLevel:
		target.Error(msg, params...)
	case level >= core.WarnLevel:
		target.Warn(msg, params...)
	default:
		target.Log(msg, params...)
	}
}

// CallConsoleLevel routes msg to the method named after level when target
// is a FullConsole, and falls back to CallConsoleDynamic otherwise.
func CallConsoleLevel(target ConsoleLike, level core.Level, msg string, params []any) {
	full, ok := target.(FullConsole)
	if !ok {
		CallConsoleDynamic(target, level, msg, params)
		return
	}
	switch {
	case level >= core.FatalLevel:
		full.Fatal(msg, params...)
	case level >= core.ErrorLevel:
		full.Error(msg, params...)
	case level >= core.WarnLevel:
		full.Warn(msg, params...)
	case level >= core.InfoLevel:
		full.Info(msg, params...)
	case level >= core.DebugLevel:
		full.Debug(msg, params...)
	case level >= core.TraceLevel:
		full.Trace(msg, params...)
	default:
		full.Verbose(msg, params...)
	}
}
