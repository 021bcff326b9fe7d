package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays LOGFAN_* environment variables onto cfg. Unparsable
// values are ignored.
func FromEnv(cfg *Config) {
	if v := os.Getenv("LOGFAN_NAME"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("LOGFAN_LEVEL"); v != "" {
		cfg.Level = LevelValue(v)
	}
	if v := os.Getenv("LOGFAN_MIN_LEVEL"); v != "" {
		cfg.MinLevel = LevelValue(v)
	}
	if v := os.Getenv("LOGFAN_MAX_LEVEL"); v != "" {
		cfg.MaxLevel = LevelValue(v)
	}
	if v := os.Getenv("LOGFAN_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = &b
		}
	}
	if v := os.Getenv("LOGFAN_FILTER"); v != "" {
		cfg.Filter = v
	}
	if v := os.Getenv("LOGFAN_SOLO"); v != "" {
		cfg.Solo = v
	}
	if v := os.Getenv("LOGFAN_BUFFER_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Transport.BufferCapacity = n
		}
	}
	if v := os.Getenv("LOGFAN_DISABLE_RECYCLING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Transport.DisableRecycling = b
		}
	}
	if v := os.Getenv("LOGFAN_DEFAULT_BROADCAST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Transport.DefaultBroadcast = b
		}
	}
	if v := os.Getenv("LOGFAN_SINK"); v != "" {
		cfg.Output.Sink = strings.ToLower(v)
	}
	if v := os.Getenv("LOGFAN_FORMAT"); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOGFAN_SEPARATOR"); v != "" {
		cfg.Output.Separator = v
	}
	if v := os.Getenv("LOGFAN_MAX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.MaxLength = n
		}
	}
	if v := os.Getenv("LOGFAN_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Color = b
		}
	}
	// LOGFAN_RATE_LIMITS=1s=10,1m=100
	if v := os.Getenv("LOGFAN_RATE_LIMITS"); v != "" {
		limits := make(map[string]int)
		for _, p := range strings.Split(v, ",") {
			window, count, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(count)); err == nil {
				limits[strings.TrimSpace(window)] = n
			}
		}
		if len(limits) > 0 {
			cfg.RateLimits = limits
		}
	}
}
