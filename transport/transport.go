package transport

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/handler"
	"github.com/pkg/errors"
)

// Config holds configuration for a transport
type Config struct {
	// Name identifies the transport in errors (default: "transport")
	Name string
	// BufferCapacity is the size of the recycling ring
	// (default: core.DefaultBufferCapacity)
	BufferCapacity int
	// DisableRecycling gives every emission a fresh event
	DisableRecycling bool
	// Creator builds events for the buffer (default: core.NewEvent)
	Creator core.EventCreator
	// Range is applied to the level range after the defaults
	Range *core.RangeConfig
	// Filter is the guard predicate (default: accept everything)
	Filter core.Filter
	// Console is the default broadcast target (default: stdout console)
	Console handler.ConsoleLike
	// Serializer renders the message handed to Console
	// (default: formatter.StringifyBase)
	Serializer handler.Serializer
	// DefaultBroadcast enables the console mirror on creation
	DefaultBroadcast bool
	// Listeners are registered in order on creation
	Listeners []handler.EventListener
	// OnError receives the combined error of every failed broadcast
	OnError func(error)
}

// applyConfigDefaults fills in zero-value fields with defaults.
func applyConfigDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = "transport"
	}
	if cfg.BufferCapacity <= 0 {
		cfg.BufferCapacity = core.DefaultBufferCapacity
	}
	if cfg.DisableRecycling {
		cfg.BufferCapacity = 0
	}
	if cfg.Creator == nil {
		cfg.Creator = core.NewEvent
	}
}

// Transport is the aggregation node of the routing graph. It combines a
// guard, a level range, a listener registry and a recycling buffer: raw
// emissions become events, and accepted events are broadcast to every
// listener, including other transports this one is piped to.
type Transport struct {
	name    string
	guard   core.Guard
	rng     *core.LevelRange
	events  core.Emitter[*core.Event]
	buffer  *core.Buffer
	stats   *handler.Stats
	intake  *intake
	mirror  *handler.Broadcaster
	onError func(error)
	primary bool

	// emitMu is held while a recycled record is being broadcast
	emitMu    sync.Mutex
	destroyed atomic.Bool
}

// intake is the listener other transports register to feed this one.
type intake struct {
	t *Transport
}

func (i *intake) OnEvent(ev *core.Event) error {
	return i.t.Send(ev)
}

// New creates a transport.
func New(cfg Config) *Transport {
	applyConfigDefaults(&cfg)
	t := &Transport{
		name:    cfg.Name,
		rng:     core.NewLevelRange(),
		buffer:  core.NewBuffer(cfg.BufferCapacity),
		stats:   handler.NewStats(),
		mirror:  handler.NewBroadcaster(cfg.Console, cfg.Serializer),
		onError: cfg.OnError,
	}
	t.intake = &intake{t: t}
	t.buffer.SetCreator(cfg.Creator)
	t.guard.SetFilter(cfg.Filter)
	if cfg.Range != nil {
		t.rng.Configure(*cfg.Range)
	}
	for _, l := range cfg.Listeners {
		t.events.Add(l)
	}
	if cfg.DefaultBroadcast {
		t.EnableDefaultBroadcast()
	}
	return t
}

// Name returns the transport's name.
func (t *Transport) Name() string {
	return t.name
}

// Events returns the listener registry.
func (t *Transport) Events() *core.Emitter[*core.Event] {
	return &t.events
}

// Guard returns the transport's guard.
func (t *Transport) Guard() *core.Guard {
	return &t.guard
}

// Range returns the transport's level range.
func (t *Transport) Range() *core.LevelRange {
	return t.rng
}

// Buffer returns the recycling buffer.
func (t *Transport) Buffer() *core.Buffer {
	return t.buffer
}

// AddListener registers l. Adding a registered listener is a no-op.
// Like every setter below, it panics with ErrDestroyed after Close; the
// removal methods stay no-ops so deferred cleanup is safe.
func (t *Transport) AddListener(l handler.EventListener) {
	t.mustBeLive("add listener")
	t.events.Add(l)
}

// RemoveListener unregisters l.
func (t *Transport) RemoveListener(l handler.EventListener) {
	t.events.Remove(l)
}

// SetFilter replaces the guard predicate. Nil accepts everything.
func (t *Transport) SetFilter(f core.Filter) {
	t.mustBeLive("set filter")
	t.guard.SetFilter(f)
}

// SetLevel sets the active level and returns the clamped result.
func (t *Transport) SetLevel(l core.Level) core.Level {
	t.mustBeLive("set level")
	return t.rng.SetLevel(l)
}

// Level returns the active level.
func (t *Transport) Level() core.Level {
	return t.rng.Level()
}

// SetMinLevel sets the lower bound of the level range.
func (t *Transport) SetMinLevel(l core.Level) {
	t.mustBeLive("set min level")
	t.rng.SetMinLevel(l)
}

// SetMaxLevel sets the upper bound of the level range.
func (t *Transport) SetMaxLevel(l core.Level) {
	t.mustBeLive("set max level")
	t.rng.SetMaxLevel(l)
}

// Configure applies the set fields of cfg to the level range.
func (t *Transport) Configure(cfg core.RangeConfig) {
	t.mustBeLive("configure")
	t.rng.Configure(cfg)
}

// ToConfig returns the level range as a config.
func (t *Transport) ToConfig() core.RangeConfig {
	return t.rng.ToConfig()
}

// IsEnabled reports whether the transport can accept anything at all.
func (t *Transport) IsEnabled() bool {
	return t.rng.Enabled() && t.guard.Mode() != core.GuardBlockAll
}

// SetEnabled turns the transport on or off without touching the guard.
func (t *Transport) SetEnabled(v bool) {
	t.mustBeLive("set enabled")
	t.rng.SetEnabled(v)
}

// Accepts reports whether ev would be broadcast.
func (t *Transport) Accepts(ev *core.Event) bool {
	return t.IsEnabled() && t.guard.Accepts(ev) && t.rng.AcceptsLevel(ev.Level)
}

// Stats returns a snapshot of the current statistics
func (t *Transport) Stats() handler.Snapshot {
	return t.stats.GetSnapshot()
}

// IsDestroyed reports whether Close has run.
func (t *Transport) IsDestroyed() bool {
	return t.destroyed.Load()
}

// mustBeLive panics with a wrapped ErrDestroyed after Close.
func (t *Transport) mustBeLive(op string) {
	if t.destroyed.Load() {
		panic(errors.Wrapf(ErrDestroyed, "transport %q: %s", t.name, op))
	}
}

// CreateEvent builds an event through the buffer. The result may be a
// recycled record; clone it to keep it past the next call.
func (t *Transport) CreateEvent(level core.Level, tag, message string, params []any) *core.Event {
	return t.buffer.Get(level, tag, message, params)
}

// Send broadcasts ev if the transport accepts it. Rejected events are
// dropped without error. The returned error combines every listener
// failure.
func (t *Transport) Send(ev *core.Event) error {
	if t.destroyed.Load() {
		return errors.Wrapf(ErrDestroyed, "transport %q: send", t.name)
	}
	if ev == nil || !t.Accepts(ev) {
		t.stats.IncrementSuppressed()
		return nil
	}
	if err := t.events.Broadcast(ev); err != nil {
		t.stats.IncrementFailed()
		if t.onError != nil {
			t.onError(err)
		}
		return err
	}
	t.stats.IncrementProcessed()
	return nil
}

// Emit creates an event and sends it.
func (t *Transport) Emit(level core.Level, tag, message string, params []any) error {
	return t.EmitFiltered(nil, level, tag, message, params)
}

// EmitFiltered is like Emit, but the event must also pass gate.
//
// A recycled record is only used while no other emission on this transport
// is in flight; a concurrent or nested emission gets a fresh event, so a
// record is never overwritten while listeners are reading it.
func (t *Transport) EmitFiltered(gate core.Filter, level core.Level, tag, message string, params []any) error {
	if t.destroyed.Load() {
		return errors.Wrapf(ErrDestroyed, "transport %q: emit", t.name)
	}
	// Level check before any allocation
	if !t.IsEnabled() || !t.rng.AcceptsLevel(level) {
		t.stats.IncrementSuppressed()
		return nil
	}

	if t.emitMu.TryLock() {
		defer t.emitMu.Unlock()
		return t.dispatch(gate, t.buffer.Get(level, tag, message, params))
	}
	return t.dispatch(gate, t.buffer.New(level, tag, message, params))
}

func (t *Transport) dispatch(gate core.Filter, ev *core.Event) error {
	if gate != nil && !gate(ev) {
		t.stats.IncrementSuppressed()
		return nil
	}
	return t.Send(ev)
}

// PipeTo forwards every event this transport broadcasts to other, which
// applies its own filtering. Piping a transport to itself is a no-op.
// Longer cycles are not detected. It panics if either transport is closed.
func (t *Transport) PipeTo(other *Transport) {
	t.mustBeLive("pipe")
	if other == nil || other == t {
		return
	}
	other.mustBeLive("pipe target")
	t.events.Add(other.intake)
}

// UnpipeFrom removes a link added by PipeTo.
func (t *Transport) UnpipeFrom(other *Transport) {
	if other == nil {
		return
	}
	t.events.Remove(other.intake)
}

// IsPipedTo reports whether t forwards to other.
func (t *Transport) IsPipedTo(other *Transport) bool {
	return other != nil && t.events.Has(other.intake)
}

// PipeToDefault pipes t into the primary transport.
func (t *Transport) PipeToDefault() {
	t.PipeTo(Primary())
}

// UnpipeFromDefault removes the link to the primary transport.
func (t *Transport) UnpipeFromDefault() {
	t.UnpipeFrom(Primary())
}

// DefaultBroadcast returns the console mirror listener.
func (t *Transport) DefaultBroadcast() *handler.Broadcaster {
	return t.mirror
}

// IsDefaultBroadcastEnabled reports whether the console mirror is registered.
func (t *Transport) IsDefaultBroadcastEnabled() bool {
	return t.events.Has(t.mirror)
}

// EnableDefaultBroadcast registers the console mirror.
func (t *Transport) EnableDefaultBroadcast() {
	t.mustBeLive("enable default broadcast")
	t.events.Add(t.mirror)
}

// DisableDefaultBroadcast unregisters the console mirror.
func (t *Transport) DisableDefaultBroadcast() {
	t.events.Remove(t.mirror)
}

// SetDefaultBroadcastEnabled registers or unregisters the console mirror.
func (t *Transport) SetDefaultBroadcastEnabled(enabled bool) {
	if enabled {
		t.EnableDefaultBroadcast()
		return
	}
	t.DisableDefaultBroadcast()
}

// Close drops every listener and cached event. Later emissions return
// ErrDestroyed, as does a second Close. The primary transport refuses to
// close.
func (t *Transport) Close() error {
	if t.primary {
		return errors.Wrapf(ErrPrimaryClose, "transport %q", t.name)
	}
	if !t.destroyed.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrDestroyed, "transport %q: close", t.name)
	}
	t.events.Clear()
	t.buffer.Clear()
	return nil
}
