// Package config describes a complete routing setup (registry level,
// transport recycling, guard filter, solo logger and output sink) as plain
// data, loaded from a JSON or TOML file and overlaid with LOGFAN_*
// environment variables.
//
// Build turns a Config into a ready Setup:
//
//	cfg, err := config.Load("logfan.toml")
//	if err != nil {
//	    return err
//	}
//	config.FromEnv(&cfg)
//	setup, err := config.Build(cfg, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer setup.Close()
//	setup.Logger("api").Info("ready")
//
// # Sinks
//
// Output.Sink selects the listener events are delivered to: "console"
// (the module's own text or JSON console), "zap", "zerolog", "logrus" or
// "slog". Output.Format picks text or JSON rendering for every sink.
//
// # Levels
//
// Level fields accept a level name ("warn", "WARNING") or a number (500),
// in both file formats and in the environment.
package config
