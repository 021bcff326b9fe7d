package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/logger"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Sink names.
const (
	SinkConsole = "console"
	SinkZap     = "zap"
	SinkZerolog = "zerolog"
	SinkLogrus  = "logrus"
	SinkSlog    = "slog"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Name names the registry and its transport
	Name     string     `json:"name" toml:"name"`
	Level    LevelValue `json:"level" toml:"level"`
	MinLevel LevelValue `json:"minLevel" toml:"minLevel"`
	MaxLevel LevelValue `json:"maxLevel" toml:"maxLevel"`
	Enabled  *bool      `json:"enabled,omitempty" toml:"enabled,omitempty"`
	// Filter is a CEL guard expression, see package filter
	Filter string `json:"filter" toml:"filter"`
	// Solo names the only logger whose events pass
	Solo       string          `json:"solo" toml:"solo"`
	Transport  TransportConfig `json:"transport" toml:"transport"`
	Output     OutputConfig    `json:"output" toml:"output"`
	RateLimits map[string]int  `json:"rateLimits" toml:"rateLimits"`
}

// TransportConfig captures event recycling and the console mirror.
type TransportConfig struct {
	BufferCapacity   int  `json:"bufferCapacity" toml:"bufferCapacity"`
	DisableRecycling bool `json:"disableRecycling" toml:"disableRecycling"`
	DefaultBroadcast bool `json:"defaultBroadcast" toml:"defaultBroadcast"`
}

// OutputConfig selects and tunes the sink.
type OutputConfig struct {
	Sink      string `json:"sink" toml:"sink"`
	Format    string `json:"format" toml:"format"`
	Separator string `json:"separator" toml:"separator"`
	MaxLength int    `json:"maxLength" toml:"maxLength"`
	Color     bool   `json:"color" toml:"color"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Name:  "logfan",
		Level: "INFO",
		Transport: TransportConfig{
			BufferCapacity: core.DefaultBufferCapacity,
		},
		Output: OutputConfig{
			Sink:   SinkConsole,
			Format: FormatText,
		},
	}
}

// Load reads configuration from a JSON or TOML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(b), &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("config: unknown keys in %s: %v", path, undecoded)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decode %s", path)
		}
	}
	return cfg, nil
}

// Validate reports every problem in cfg at once.
func (c Config) Validate() error {
	var err error
	for _, lv := range []struct {
		field string
		v     LevelValue
	}{
		{"level", c.Level},
		{"minLevel", c.MinLevel},
		{"maxLevel", c.MaxLevel},
	} {
		if lv.v == "" {
			continue
		}
		if _, ok := lv.v.Level(); !ok {
			err = multierr.Append(err, errors.Errorf("config: %s: unknown level %q", lv.field, string(lv.v)))
		}
	}
	switch c.Output.Sink {
	case "", SinkConsole, SinkZap, SinkZerolog, SinkLogrus, SinkSlog:
	default:
		err = multierr.Append(err, errors.Errorf("config: unknown sink %q", c.Output.Sink))
	}
	switch c.Output.Format {
	case "", FormatText, FormatJSON:
	default:
		err = multierr.Append(err, errors.Errorf("config: unknown format %q", c.Output.Format))
	}
	if _, rerr := c.Rates(); rerr != nil {
		err = multierr.Append(err, rerr)
	}
	return err
}

// Rates converts RateLimits to the window map used by handler.RateLimited.
func (c Config) Rates() (map[time.Duration]int, error) {
	if len(c.RateLimits) == 0 {
		return nil, nil
	}
	rates := make(map[time.Duration]int, len(c.RateLimits))
	for window, n := range c.RateLimits {
		d, err := time.ParseDuration(window)
		if err != nil {
			return nil, errors.Wrapf(err, "config: rate window %q", window)
		}
		if d <= 0 || n <= 0 {
			return nil, errors.Errorf("config: rate %q = %d must be positive", window, n)
		}
		rates[d] = n
	}
	return rates, nil
}

// RangeConfig returns the level settings as a core.RangeConfig. Unset or
// unknown levels are left nil.
func (c Config) RangeConfig() core.RangeConfig {
	var rc core.RangeConfig
	if l, ok := c.MinLevel.Level(); ok {
		rc.MinLevel = core.LevelPtr(l)
	}
	if l, ok := c.MaxLevel.Level(); ok {
		rc.MaxLevel = core.LevelPtr(l)
	}
	if l, ok := c.Level.Level(); ok {
		rc.Level = core.LevelPtr(l)
	}
	if c.Enabled != nil {
		rc.Enabled = core.BoolPtr(*c.Enabled)
	}
	return rc
}

// LevelValue is a level given by name ("warn") or number (500).
type LevelValue string

// Level resolves v. An empty value is not a level.
func (v LevelValue) Level() (core.Level, bool) {
	if v == "" {
		return 0, false
	}
	return logger.LookupLevel(string(v))
}

// UnmarshalJSON accepts a JSON string or number.
func (v *LevelValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return v.set(raw)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *LevelValue) UnmarshalTOML(data any) error {
	return v.set(data)
}

func (v *LevelValue) set(raw any) error {
	switch x := raw.(type) {
	case nil:
		*v = ""
	case string:
		*v = LevelValue(x)
	case int64:
		*v = LevelValue(strconv.FormatInt(x, 10))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Errorf("config: invalid level %v", x)
		}
		*v = LevelValue(strconv.FormatFloat(math.Round(x), 'f', 0, 64))
	default:
		return errors.Errorf("config: invalid level %v", raw)
	}
	return nil
}
