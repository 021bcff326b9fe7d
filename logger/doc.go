// Package logger is the public API of logfan. Most users only need to
// import this package.
//
// A Registry hands out named Loggers and funnels their events into a
// transport. Handles are identity-stable: asking for the same name twice
// returns the same *Logger. Setting the registry level cascades to every
// registered logger, but only when the clamped level actually changes.
//
// The package creates a main registry bound to transport.Primary on first
// use. The package-level functions Info, Error, Debugf, etc. delegate to
// its "app" logger, so simple programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// Programs wanting isolation build their own registry:
//
//	reg := logger.NewRegistry(logger.RegistryConfig{Name: "svc"})
//	reg.Transport().AddListener(handler.NewConsoleHandler(handler.ConsoleConfig{}))
//	db := reg.GetLogger("db")
//	db.Warn("slow query", logger.Duration("took", d))
//
// Solo mode silences every logger of a registry but one:
//
//	reg.SetSoloLogger(db)
//	defer reg.SetSoloLogger(nil)
//
// Level checks happen before any allocation, so filtered-out messages
// cost only a couple of comparisons. Fatal logs at FATAL and never exits.
//
// After Registry.Close, methods returning an error report ErrDestroyed and
// the level methods panic with an error wrapping it. The main registry
// refuses to close with ErrPrimaryClose.
package logger
