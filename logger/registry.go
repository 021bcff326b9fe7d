package logger

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/transport"
	"github.com/pkg/errors"
)

var (
	// ErrDestroyed is returned, or wrapped in a panic, on use after Close.
	ErrDestroyed = transport.ErrDestroyed
	// ErrPrimaryClose is returned when closing the main registry.
	ErrPrimaryClose = transport.ErrPrimaryClose
)

// RegistryConfig holds configuration for a registry
type RegistryConfig struct {
	// Name identifies the registry in errors (default: "registry")
	Name string
	// Transport receives every accepted event. When nil the registry creates
	// and owns one, closing it on Close.
	Transport *transport.Transport
	// Range is applied to the registry's level range
	Range *core.RangeConfig
	// OnError receives listener errors from logging calls that cannot
	// return them (Info, Warn, ...)
	OnError func(error)
}

// applyRegistryDefaults fills in zero-value fields with defaults.
func applyRegistryDefaults(cfg *RegistryConfig) {
	if cfg.Name == "" {
		cfg.Name = "registry"
	}
}

// Registry hands out named loggers that all report to one transport. The
// registry level cascades to its loggers, and one logger at a time can be
// put in solo mode to silence all others.
type Registry struct {
	name          string
	transport     *transport.Transport
	ownsTransport bool
	rng           *core.LevelRange
	onError       func(error)
	gate          core.Filter
	main          bool

	mu      sync.RWMutex // protects loggers, accepts and solo
	loggers map[string]*Logger
	accepts core.Filter
	solo    *Logger

	destroyed atomic.Bool
}

// NewRegistry creates a registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	applyRegistryDefaults(&cfg)
	r := &Registry{
		name:      cfg.Name,
		transport: cfg.Transport,
		rng:       core.NewLevelRange(),
		onError:   cfg.OnError,
		loggers:   make(map[string]*Logger),
	}
	if r.transport == nil {
		r.transport = transport.New(transport.Config{Name: cfg.Name})
		r.ownsTransport = true
	}
	if cfg.Range != nil {
		r.rng.Configure(*cfg.Range)
	}
	r.accepts = r.acceptsLevel
	r.gate = r.accept
	return r
}

// Name returns the registry's name.
func (r *Registry) Name() string {
	return r.name
}

// Transport returns the transport events are sent to.
func (r *Registry) Transport() *transport.Transport {
	return r.transport
}

// Range returns the registry's level range.
func (r *Registry) Range() *core.LevelRange {
	return r.rng
}

// GetLogger returns the logger registered under name, creating it at the
// registry's current level on first use. Every call returns the same
// handle for a name; cfg is applied to it on each call.
// It panics after Close.
func (r *Registry) GetLogger(name string, cfg ...core.RangeConfig) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed.Load() {
		panic(errors.Wrapf(ErrDestroyed, "registry %q: get logger %q", r.name, name))
	}
	l, ok := r.loggers[name]
	if !ok {
		l = newLogger(name, r)
		l.rng.SetLevel(r.rng.Level())
		r.loggers[name] = l
	}
	for _, c := range cfg {
		l.rng.Configure(c)
	}
	return l
}

// Loggers returns the names of the registered loggers, sorted.
func (r *Registry) Loggers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.loggers))
}

// Level returns the registry level.
func (r *Registry) Level() Level {
	return r.rng.Level()
}

// SetLevel sets the registry level and returns the clamped result. If the
// level changed, every registered logger is set to it as well.
// It panics after Close.
func (r *Registry) SetLevel(v Level) Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeLive("set level")
	prev := r.rng.Level()
	next := r.rng.SetLevel(v)
	if next != prev {
		r.cascade(next)
	}
	return next
}

// Configure applies the set fields of cfg to the registry range, cascading
// the level like SetLevel. It panics after Close.
func (r *Registry) Configure(cfg core.RangeConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeLive("configure")
	prev := r.rng.Level()
	r.rng.Configure(cfg)
	if next := r.rng.Level(); next != prev {
		r.cascade(next)
	}
}

// ToConfig returns the registry range as a config.
func (r *Registry) ToConfig() core.RangeConfig {
	return r.rng.ToConfig()
}

// cascade must be called with r.mu held.
func (r *Registry) cascade(level Level) {
	for _, l := range r.loggers {
		l.rng.SetLevel(level)
	}
}

// IsEnabled reports whether the registry forwards events.
func (r *Registry) IsEnabled() bool {
	return r.rng.Enabled()
}

// SetEnabled turns forwarding on or off. It panics after Close.
func (r *Registry) SetEnabled(v bool) {
	r.mustBeLive("set enabled")
	r.rng.SetEnabled(v)
}

// mustBeLive panics with a wrapped ErrDestroyed after Close.
func (r *Registry) mustBeLive(op string) {
	if r.destroyed.Load() {
		panic(errors.Wrapf(ErrDestroyed, "registry %q: %s", r.name, op))
	}
}

func (r *Registry) acceptsLevel(ev *core.Event) bool {
	return r.rng.AcceptsLevel(ev.Level)
}

// accept applies the current acceptance predicate.
func (r *Registry) accept(ev *core.Event) bool {
	r.mu.RLock()
	f := r.accepts
	r.mu.RUnlock()
	return f(ev)
}

// SetAccepts replaces the acceptance predicate and clears any solo logger.
// Nil restores the default, which accepts events at or above the registry
// level.
func (r *Registry) SetAccepts(f core.Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeLive("set accepts")
	r.solo = nil
	if f == nil {
		f = r.acceptsLevel
	}
	r.accepts = f
}

// SetSoloLogger makes l the only logger whose events are accepted,
// regardless of level. Nil clears solo mode and restores the default
// predicate.
func (r *Registry) SetSoloLogger(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeLive("set solo logger")
	r.solo = l
	if l == nil {
		r.accepts = r.acceptsLevel
		return
	}
	name := l.Name()
	r.accepts = func(ev *core.Event) bool {
		return ev != nil && ev.Tag == name
	}
}

// SoloLogger returns the solo logger, or nil.
func (r *Registry) SoloLogger() *Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.solo
}

// HasSoloLogger reports whether a solo logger is set.
func (r *Registry) HasSoloLogger() bool {
	return r.SoloLogger() != nil
}

// Emit sends an already built event through the registry's acceptance
// checks to the transport.
func (r *Registry) Emit(ev *core.Event) error {
	if r.destroyed.Load() {
		return errors.Wrapf(ErrDestroyed, "registry %q: emit", r.name)
	}
	if ev == nil || !r.rng.Enabled() || !r.accept(ev) {
		return nil
	}
	return r.transport.Send(ev)
}

// emit is the path taken by Logger calls.
func (r *Registry) emit(level Level, tag, message string, params []any) error {
	if r.destroyed.Load() {
		return errors.Wrapf(ErrDestroyed, "registry %q: emit", r.name)
	}
	if !r.rng.Enabled() {
		return nil
	}
	return r.transport.EmitFiltered(r.gate, level, tag, message, params)
}

func (r *Registry) reportError(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}

// IsDestroyed reports whether Close has run.
func (r *Registry) IsDestroyed() bool {
	return r.destroyed.Load()
}

// Close destroys every logger of the registry, and the transport if the
// registry created it. The main registry refuses to close.
func (r *Registry) Close() error {
	if r.main {
		return errors.Wrapf(ErrPrimaryClose, "registry %q", r.name)
	}
	if !r.destroyed.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrDestroyed, "registry %q: close", r.name)
	}
	r.mu.Lock()
	for _, l := range r.loggers {
		l.destroyed.Store(true)
	}
	clear(r.loggers)
	r.solo = nil
	r.accepts = r.acceptsLevel
	r.mu.Unlock()

	if r.ownsTransport {
		return r.transport.Close()
	}
	return nil
}
