package core

import (
	"encoding/json"
	"math"
	"sync"
)

// RangeConfig is the externally visible configuration of a LevelRange.
// Nil fields leave the corresponding setting unchanged.
type RangeConfig struct {
	Level    *Level `json:"level,omitempty" toml:"level,omitempty"`
	MinLevel *Level `json:"minLevel,omitempty" toml:"minLevel,omitempty"`
	MaxLevel *Level `json:"maxLevel,omitempty" toml:"maxLevel,omitempty"`
	Enabled  *bool  `json:"enabled,omitempty" toml:"enabled,omitempty"`
}

// LevelPtr returns a pointer to l, for building a RangeConfig.
func LevelPtr(l Level) *Level { return &l }

// BoolPtr returns a pointer to b, for building a RangeConfig.
func BoolPtr(b bool) *bool { return &b }

// UnmarshalJSON decodes loosely: numeric fields of any JSON number form are
// rounded, and values of the wrong type are ignored instead of failing.
func (c *RangeConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = RangeConfigFromMap(raw)
	return nil
}

// RangeConfigFromMap extracts a RangeConfig from loosely typed input. Keys
// are level, minLevel, maxLevel and enabled; anything unusable is skipped.
func RangeConfigFromMap(m map[string]any) RangeConfig {
	var c RangeConfig
	if v, ok := asLevel(m["minLevel"]); ok {
		c.MinLevel = &v
	}
	if v, ok := asLevel(m["maxLevel"]); ok {
		c.MaxLevel = &v
	}
	if v, ok := asLevel(m["level"]); ok {
		c.Level = &v
	}
	if v, ok := m["enabled"].(bool); ok {
		c.Enabled = &v
	}
	return c
}

func asLevel(v any) (Level, bool) {
	switch n := v.(type) {
	case Level:
		return n, true
	case int:
		return Level(n), true
	case int8:
		return Level(n), true
	case int16:
		return Level(n), true
	case int32:
		return Level(n), true
	case int64:
		return Level(n), true
	case uint:
		return Level(n), true
	case uint8:
		return Level(n), true
	case uint16:
		return Level(n), true
	case uint32:
		return Level(n), true
	case uint64:
		return Level(n), true
	case float32:
		return roundLevel(float64(n))
	case float64:
		return roundLevel(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return roundLevel(f)
	}
	return 0, false
}

func roundLevel(f float64) (Level, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return Level(math.Round(f)), true
}

// LevelRange holds an active level bounded by a min and max, plus an enabled
// flag. It keeps minLevel < maxLevel and minLevel <= level <= maxLevel at all
// times. Use NewLevelRange; the zero value is not usable.
type LevelRange struct {
	mu       sync.RWMutex
	minLevel Level
	maxLevel Level
	level    Level
	enabled  bool
}

// NewLevelRange creates a range spanning VerboseLevel..FatalLevel at VerboseLevel.
func NewLevelRange() *LevelRange {
	r := &LevelRange{}
	r.Reset()
	return r
}

// Reset restores the defaults.
func (r *LevelRange) Reset() {
	r.mu.Lock()
	r.minLevel = VerboseLevel
	r.maxLevel = FatalLevel
	r.level = VerboseLevel
	r.enabled = true
	r.mu.Unlock()
}

// MinLevel returns the lower bound.
func (r *LevelRange) MinLevel() Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minLevel
}

// MaxLevel returns the upper bound.
func (r *LevelRange) MaxLevel() Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxLevel
}

// Level returns the active level.
func (r *LevelRange) Level() Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.level
}

// Enabled reports the enabled flag.
func (r *LevelRange) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// SetEnabled sets the enabled flag.
func (r *LevelRange) SetEnabled(v bool) {
	r.mu.Lock()
	r.enabled = v
	r.mu.Unlock()
}

// SetMinLevel sets the lower bound to max(0, min(maxLevel-1, v)) and
// re-clamps the active level.
func (r *LevelRange) SetMinLevel(v Level) {
	r.mu.Lock()
	r.setMin(v)
	r.mu.Unlock()
}

// SetMaxLevel sets the upper bound to max(1, minLevel+1, v) and re-clamps the
// active level.
func (r *LevelRange) SetMaxLevel(v Level) {
	r.mu.Lock()
	r.setMax(v)
	r.mu.Unlock()
}

// SetLevel sets the active level clamped into [minLevel, maxLevel] and
// returns the resulting level.
func (r *LevelRange) SetLevel(v Level) Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setLevel(v)
	return r.level
}

// SyncLevel re-applies the clamp to the current level.
func (r *LevelRange) SyncLevel() {
	r.mu.Lock()
	r.setLevel(r.level)
	r.mu.Unlock()
}

// AcceptsLevel reports whether level <= candidate.
func (r *LevelRange) AcceptsLevel(candidate Level) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.level <= candidate
}

func (r *LevelRange) setMin(v Level) {
	r.minLevel = max(0, min(r.maxLevel-1, v))
	r.setLevel(r.level)
}

func (r *LevelRange) setMax(v Level) {
	r.maxLevel = max(1, r.minLevel+1, v)
	r.setLevel(r.level)
}

func (r *LevelRange) setLevel(v Level) {
	r.level = max(r.minLevel, min(r.maxLevel, v))
}

// ToConfig returns the full current configuration.
func (r *LevelRange) ToConfig() RangeConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RangeConfig{
		Level:    LevelPtr(r.level),
		MinLevel: LevelPtr(r.minLevel),
		MaxLevel: LevelPtr(r.maxLevel),
		Enabled:  BoolPtr(r.enabled),
	}
}

// Configure applies the set fields of cfg in the order min, max, level,
// enabled.
func (r *LevelRange) Configure(cfg RangeConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.MinLevel != nil {
		r.setMin(*cfg.MinLevel)
	}
	if cfg.MaxLevel != nil {
		r.setMax(*cfg.MaxLevel)
	}
	if cfg.Level != nil {
		r.setLevel(*cfg.Level)
	}
	if cfg.Enabled != nil {
		r.enabled = *cfg.Enabled
	}
}

// ConfigureMap applies loosely typed configuration. Non-numeric levels and
// non-boolean enabled values are ignored.
func (r *LevelRange) ConfigureMap(m map[string]any) {
	r.Configure(RangeConfigFromMap(m))
}
