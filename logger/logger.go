package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/philipp01105/logfan/core"
	"github.com/pkg/errors"
)

// Logger is a named handle bound to a registry. Its events carry the
// logger's name as their tag. Loggers come from Registry.GetLogger and are
// safe for concurrent use.
type Logger struct {
	name      string
	registry  *Registry
	rng       *core.LevelRange
	destroyed atomic.Bool
}

func newLogger(name string, r *Registry) *Logger {
	return &Logger{
		name:     name,
		registry: r,
		rng:      core.NewLevelRange(),
	}
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// Registry returns the registry that created the logger.
func (l *Logger) Registry() *Registry {
	return l.registry
}

// Range returns the logger's own level range.
func (l *Logger) Range() *core.LevelRange {
	return l.rng
}

// Level returns the logger's level.
func (l *Logger) Level() Level {
	return l.rng.Level()
}

// SetLevel sets the logger's level and returns the clamped result. It
// panics after the registry is closed.
func (l *Logger) SetLevel(v Level) Level {
	l.mustBeLive("set level")
	return l.rng.SetLevel(v)
}

// Configure applies the set fields of cfg to the logger's range.
func (l *Logger) Configure(cfg core.RangeConfig) {
	l.mustBeLive("configure")
	l.rng.Configure(cfg)
}

func (l *Logger) mustBeLive(op string) {
	if l.destroyed.Load() {
		panic(errors.Wrapf(ErrDestroyed, "logger %q: %s", l.name, op))
	}
}

// IsEnabled reports whether the logger emits anything.
func (l *Logger) IsEnabled() bool {
	return l.rng.Enabled()
}

// SetEnabled turns the logger on or off.
func (l *Logger) SetEnabled(v bool) {
	l.mustBeLive("set enabled")
	l.rng.SetEnabled(v)
}

// IsDestroyed reports whether the logger's registry was closed.
func (l *Logger) IsDestroyed() bool {
	return l.destroyed.Load()
}

// Emit logs message at level. Events below the logger's level are dropped
// before anything is allocated. The returned error combines the failures
// of the listeners that received the event.
func (l *Logger) Emit(level Level, message string, params ...any) error {
	if l.destroyed.Load() {
		return errors.Wrapf(ErrDestroyed, "logger %q", l.name)
	}
	if !l.rng.Enabled() || !l.rng.AcceptsLevel(level) {
		return nil
	}
	return l.registry.emit(level, l.name, message, params)
}

// log is the path of the level methods: listener errors go to the
// registry's OnError, use after Close panics.
func (l *Logger) log(level Level, message string, params []any) {
	if err := l.Emit(level, message, params...); err != nil {
		if errors.Is(err, ErrDestroyed) {
			panic(err)
		}
		l.registry.reportError(err)
	}
}

// skip reports whether a live logger would drop level, so formatted calls
// can return before formatting.
func (l *Logger) skip(level Level) bool {
	return !l.destroyed.Load() && !(l.rng.Enabled() && l.rng.AcceptsLevel(level))
}

// Verbose logs at VERBOSE.
func (l *Logger) Verbose(msg string, params ...any) { l.log(VerboseLevel, msg, params) }

// Trace logs at TRACE.
func (l *Logger) Trace(msg string, params ...any) { l.log(TraceLevel, msg, params) }

// Debug logs at DEBUG.
func (l *Logger) Debug(msg string, params ...any) { l.log(DebugLevel, msg, params) }

// Log logs at DEBUG, like console.log.
func (l *Logger) Log(msg string, params ...any) { l.log(DebugLevel, msg, params) }

// Info logs at INFO.
func (l *Logger) Info(msg string, params ...any) { l.log(InfoLevel, msg, params) }

// Warn logs at WARN.
func (l *Logger) Warn(msg string, params ...any) { l.log(WarnLevel, msg, params) }

// Error logs at ERROR.
func (l *Logger) Error(msg string, params ...any) { l.log(ErrorLevel, msg, params) }

// Fatal logs at FATAL. Unlike many loggers it does not exit the process.
func (l *Logger) Fatal(msg string, params ...any) { l.log(FatalLevel, msg, params) }

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if l.skip(DebugLevel) {
		return
	}
	l.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if l.skip(InfoLevel) {
		return
	}
	l.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if l.skip(WarnLevel) {
		return
	}
	l.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if l.skip(ErrorLevel) {
		return
	}
	l.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}
