package logger

import (
	"sync"

	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/transport"
)

// DefaultName is the name of the logger used by the package-level functions.
const DefaultName = "app"

var (
	mainOnce sync.Once
	mainReg  *Registry
)

// Main returns the process-wide registry, creating it on first use. It is
// bound to transport.Primary and refuses to close.
func Main() *Registry {
	mainOnce.Do(func() {
		mainReg = NewRegistry(RegistryConfig{Name: "main", Transport: transport.Primary()})
		mainReg.main = true
	})
	return mainReg
}

// Get returns the named logger of the main registry.
func Get(name string, cfg ...core.RangeConfig) *Logger {
	return Main().GetLogger(name, cfg...)
}

// SetLevel sets the level of the main registry and its loggers.
func SetLevel(v Level) Level {
	return Main().SetLevel(v)
}

// Default returns the logger behind the package-level functions.
func Default() *Logger {
	return Get(DefaultName)
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, params ...any) {
	Default().Debug(msg, params...)
}

// Info logs an info message using the default logger
func Info(msg string, params ...any) {
	Default().Info(msg, params...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, params ...any) {
	Default().Warn(msg, params...)
}

// Error logs an error message using the default logger
func Error(msg string, params ...any) {
	Default().Error(msg, params...)
}

// Fatal logs a fatal message using the default logger. It does not exit.
func Fatal(msg string, params ...any) {
	Default().Fatal(msg, params...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...any) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...any) {
	Default().Infof(format, args...)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...any) {
	Default().Warnf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...any) {
	Default().Errorf(format, args...)
}
