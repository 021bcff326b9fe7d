package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/formatter"
	"github.com/philipp01105/logfan/handler"
	"github.com/philipp01105/logfan/transport"
)

func newTestRegistry(t *testing.T) (*Registry, *handler.Collector) {
	t.Helper()
	reg := NewRegistry(RegistryConfig{Name: "test"})
	c := handler.NewCollector(0)
	reg.Transport().AddListener(c)
	t.Cleanup(func() { _ = reg.Close() })
	return reg, c
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(RegistryConfig{})
	reg.Transport().AddListener(handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	}))
	log := reg.GetLogger("gate")
	log.SetLevel(InfoLevel)

	// Debug should not be logged (below Info level)
	log.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("Debug message was logged when level is Info")
	}

	log.Info("info message")
	if !strings.Contains(buf.String(), "[INFO] [gate] info message") {
		t.Errorf("Expected 'info message' in output, got: %s", buf.String())
	}

	buf.Reset()
	log.Warn("warn message", Int("attempt", 2))
	if !strings.Contains(buf.String(), `[WARN] [gate] warn message :: {"attempt":2}`) {
		t.Errorf("Expected 'warn message' in output, got: %s", buf.String())
	}

	buf.Reset()
	log.Errorf("error %d", 42)
	if !strings.Contains(buf.String(), "[ERROR] [gate] error 42") {
		t.Errorf("Expected 'error 42' in output, got: %s", buf.String())
	}
}

func TestLogger_SugarLevels(t *testing.T) {
	reg, c := newTestRegistry(t)
	log := reg.GetLogger("sugar")

	log.Verbose("v")
	log.Trace("t")
	log.Debug("d")
	log.Log("l")
	log.Info("i")
	log.Warn("w")
	log.Error("e")
	log.Fatal("f")

	want := []core.Level{VerboseLevel, TraceLevel, DebugLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
	events := c.Events()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Level != want[i] || ev.Tag != "sugar" {
			t.Errorf("event %d = %+v, want level %s", i, ev, want[i])
		}
	}
}

func TestRegistry_GetLoggerIsIdentityStable(t *testing.T) {
	reg, _ := newTestRegistry(t)
	a := reg.GetLogger("a")
	if reg.GetLogger("a") != a {
		t.Fatal("GetLogger returned a new handle for the same name")
	}
	if reg.GetLogger("b") == a {
		t.Fatal("different names share a handle")
	}
	if got := reg.Loggers(); strings.Join(got, ",") != "a,b" {
		t.Errorf("Loggers() = %v", got)
	}
	if a.Registry() != reg || a.Name() != "a" {
		t.Error("logger does not know its registry and name")
	}
}

func TestRegistry_GetLoggerAppliesConfig(t *testing.T) {
	reg, _ := newTestRegistry(t)
	reg.GetLogger("db")
	l := reg.GetLogger("db", core.RangeConfig{Level: core.LevelPtr(WarnLevel), Enabled: core.BoolPtr(false)})
	if l.Level() != WarnLevel || l.IsEnabled() {
		t.Errorf("config not applied to existing logger: level=%s enabled=%v", l.Level(), l.IsEnabled())
	}
}

func TestRegistry_NewLoggerInheritsLevel(t *testing.T) {
	reg, _ := newTestRegistry(t)
	reg.SetLevel(WarnLevel)
	if l := reg.GetLogger("late"); l.Level() != WarnLevel {
		t.Errorf("new logger level = %s, want WARN", l.Level())
	}
}

func TestRegistry_SetLevelCascades(t *testing.T) {
	reg, c := newTestRegistry(t)
	a, b := reg.GetLogger("a"), reg.GetLogger("b")

	if got := reg.SetLevel(ErrorLevel); got != ErrorLevel {
		t.Fatalf("SetLevel() = %s", got)
	}
	if a.Level() != ErrorLevel || b.Level() != ErrorLevel {
		t.Fatalf("levels = %s, %s; want ERROR", a.Level(), b.Level())
	}

	a.Info("dropped")
	a.Error("kept")
	if got := c.Messages(); len(got) != 1 || got[0] != "kept" {
		t.Errorf("Messages() = %v, want [kept]", got)
	}
}

func TestRegistry_SetLevelNoopDoesNotCascade(t *testing.T) {
	reg, _ := newTestRegistry(t)
	reg.SetLevel(InfoLevel)
	l := reg.GetLogger("custom")
	l.SetLevel(TraceLevel)

	reg.SetLevel(InfoLevel)
	if l.Level() != TraceLevel {
		t.Errorf("unchanged registry level overwrote logger level: %s", l.Level())
	}

	// Clamped to the same value is still no change
	reg.Configure(core.RangeConfig{MaxLevel: core.LevelPtr(FatalLevel)})
	if l.Level() != TraceLevel {
		t.Errorf("Configure without level change cascaded: %s", l.Level())
	}

	reg.Configure(core.RangeConfig{Level: core.LevelPtr(WarnLevel)})
	if l.Level() != WarnLevel {
		t.Errorf("Configure level change did not cascade: %s", l.Level())
	}
}

func TestRegistry_Solo(t *testing.T) {
	reg, c := newTestRegistry(t)
	a, b := reg.GetLogger("A"), reg.GetLogger("B")

	reg.SetSoloLogger(b)
	if !reg.HasSoloLogger() || reg.SoloLogger() != b {
		t.Fatal("solo logger not set")
	}

	a.Info("from A")
	b.Info("from B")
	if got := c.Messages(); len(got) != 1 || got[0] != "from B" {
		t.Fatalf("Messages() = %v, want [from B]", got)
	}

	reg.SetSoloLogger(a)
	c.Reset()
	a.Info("from A")
	b.Info("from B")
	if got := c.Messages(); len(got) != 1 || got[0] != "from A" {
		t.Fatalf("after swap Messages() = %v, want [from A]", got)
	}

	reg.SetSoloLogger(nil)
	c.Reset()
	a.Info("from A")
	b.Info("from B")
	if c.Len() != 2 || reg.HasSoloLogger() {
		t.Errorf("clearing solo did not restore both loggers: %v", c.Messages())
	}
}

func TestRegistry_SetAccepts(t *testing.T) {
	reg, c := newTestRegistry(t)
	l := reg.GetLogger("x")
	reg.SetSoloLogger(reg.GetLogger("other"))

	reg.SetAccepts(func(ev *core.Event) bool { return strings.HasPrefix(ev.Message, "keep") })
	if reg.HasSoloLogger() {
		t.Error("SetAccepts should clear solo mode")
	}
	l.Info("keep me")
	l.Info("drop me")
	if got := c.Messages(); len(got) != 1 || got[0] != "keep me" {
		t.Errorf("Messages() = %v", got)
	}

	reg.SetAccepts(nil)
	reg.SetLevel(WarnLevel)
	c.Reset()
	l.SetLevel(VerboseLevel)
	l.Info("below registry level")
	l.Warn("at registry level")
	if got := c.Messages(); len(got) != 1 || got[0] != "at registry level" {
		t.Errorf("default predicate Messages() = %v", got)
	}
}

func TestRegistry_Disabled(t *testing.T) {
	reg, c := newTestRegistry(t)
	l := reg.GetLogger("x")

	reg.SetEnabled(false)
	l.Error("registry off")
	reg.SetEnabled(true)

	l.SetEnabled(false)
	l.Error("logger off")
	l.SetEnabled(true)

	l.Error("on")
	if got := c.Messages(); len(got) != 1 || got[0] != "on" {
		t.Errorf("Messages() = %v, want [on]", got)
	}
}

func TestRegistry_EmitEvent(t *testing.T) {
	reg, c := newTestRegistry(t)
	reg.SetLevel(WarnLevel)

	_ = reg.Emit(core.NewEvent(InfoLevel, "ext", "low", nil))
	_ = reg.Emit(core.NewEvent(ErrorLevel, "ext", "high", nil))
	_ = reg.Emit(nil)

	if got := c.Messages(); len(got) != 1 || got[0] != "high" {
		t.Errorf("Messages() = %v, want [high]", got)
	}
}

func TestRegistry_SharedTransport(t *testing.T) {
	tr := transport.New(transport.Config{})
	c := handler.NewCollector(0)
	tr.AddListener(c)

	r1 := NewRegistry(RegistryConfig{Name: "r1", Transport: tr})
	r2 := NewRegistry(RegistryConfig{Name: "r2", Transport: tr})
	r1.GetLogger("a").Info("one")
	r2.GetLogger("b").Info("two")

	if c.Len() != 2 {
		t.Fatalf("got %d events, want 2", c.Len())
	}
	if err := r1.Close(); err != nil {
		t.Fatal(err)
	}
	if tr.IsDestroyed() {
		t.Error("closing a registry destroyed a transport it does not own")
	}
}

func TestRegistry_OnError(t *testing.T) {
	var reported []error
	reg := NewRegistry(RegistryConfig{OnError: func(err error) { reported = append(reported, err) }})
	defer reg.Close()
	boom := errors.New("sink down")
	reg.Transport().AddListener(core.ListenerFunc(func(*core.Event) error { return boom }))

	l := reg.GetLogger("x")
	l.Info("lost")
	if len(reported) != 1 || !errors.Is(reported[0], boom) {
		t.Errorf("reported = %v", reported)
	}
	if err := l.Emit(InfoLevel, "returned"); !errors.Is(err, boom) {
		t.Errorf("Emit() error = %v, want %v", err, boom)
	}
	if len(reported) != 1 {
		t.Error("Emit should return errors instead of reporting them")
	}
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry(RegistryConfig{Name: "closing"})
	l := reg.GetLogger("x")

	if err := reg.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !reg.IsDestroyed() || !l.IsDestroyed() || !reg.Transport().IsDestroyed() {
		t.Fatal("Close should destroy the registry, its loggers and its transport")
	}
	if len(reg.Loggers()) != 0 {
		t.Error("Close should drop the loggers")
	}
	if err := reg.Close(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("second Close() error = %v", err)
	}
	if err := l.Emit(InfoLevel, "x"); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Emit() error = %v, want ErrDestroyed", err)
	}
	if err := reg.Emit(core.NewEvent(InfoLevel, "x", "m", nil)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Registry.Emit() error = %v, want ErrDestroyed", err)
	}

	for name, fn := range map[string]func(){
		"Info":              func() { l.Info("x") },
		"Debugf":            func() { l.Debugf("%d", 1) },
		"GetLogger":         func() { reg.GetLogger("y") },
		"SetLevel":          func() { reg.SetLevel(ErrorLevel) },
		"Configure":         func() { reg.Configure(core.RangeConfig{Level: core.LevelPtr(WarnLevel)}) },
		"SetEnabled":        func() { reg.SetEnabled(false) },
		"SetAccepts":        func() { reg.SetAccepts(nil) },
		"SetSoloLogger":     func() { reg.SetSoloLogger(l) },
		"Logger.SetLevel":   func() { l.SetLevel(ErrorLevel) },
		"Logger.SetEnabled": func() { l.SetEnabled(false) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, ErrDestroyed) {
					t.Errorf("panic = %v, want ErrDestroyed", err)
				}
			}()
			fn()
		})
	}
}

func TestRegistry_ConcurrentSetLevelKeepsLoggersInStep(t *testing.T) {
	reg, _ := newTestRegistry(t)
	loggers := []*Logger{reg.GetLogger("a"), reg.GetLogger("b"), reg.GetLogger("c")}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					reg.SetLevel(InfoLevel)
				} else {
					reg.Configure(core.RangeConfig{Level: core.LevelPtr(VerboseLevel)})
				}
			}
		}(i)
	}
	wg.Wait()

	want := reg.Level()
	for _, l := range loggers {
		if l.Level() != want {
			t.Errorf("logger %q level = %d, registry level = %d", l.Name(), l.Level(), want)
		}
	}
}

func TestMain_RejectsClose(t *testing.T) {
	m := Main()
	if m != Main() {
		t.Fatal("Main() is not a singleton")
	}
	if m.Transport() != transport.Primary() {
		t.Error("main registry should use the primary transport")
	}
	if err := m.Close(); !errors.Is(err, ErrPrimaryClose) {
		t.Errorf("Close() error = %v, want ErrPrimaryClose", err)
	}
	if m.IsDestroyed() {
		t.Error("main registry was destroyed")
	}
	if Get("pkg") != m.GetLogger("pkg") {
		t.Error("Get should use the main registry")
	}
	if Default().Name() != DefaultName {
		t.Errorf("Default().Name() = %q", Default().Name())
	}
}

func TestLogger_IsConsoleLike(t *testing.T) {
	target, c := newTestRegistry(t)
	mirror := target.GetLogger("mirror")

	src := transport.New(transport.Config{
		Console:          mirror,
		Serializer:       func(ev *core.Event) string { return ev.Tag + ": " + ev.Message },
		DefaultBroadcast: true,
	})
	_ = src.Emit(WarnLevel, "svc", "disk low", []any{93})
	_ = src.Emit(InfoLevel, "svc", "ok", nil)

	events := c.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Level != WarnLevel || events[0].Message != "svc: disk low" || events[0].Params[0] != 93 {
		t.Errorf("warn mirror = %+v", events[0])
	}
	if events[1].Level != InfoLevel || events[1].Tag != "mirror" {
		t.Errorf("info mirror = %+v", events[1])
	}
}

func TestLogger_Concurrent(t *testing.T) {
	reg, c := newTestRegistry(t)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := reg.GetLogger("worker")
			for i := 0; i < 100; i++ {
				l.Info("tick", i)
				if i%25 == 0 {
					reg.SetSoloLogger(l)
					reg.SetSoloLogger(nil)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() != 400 {
		t.Errorf("got %d events, want 400", c.Len())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"Error", ErrorLevel},
		{"fatal", FatalLevel},
		{"verbose", VerboseLevel},
		{" 450 ", 450},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, ok := LookupLevel("bogus"); ok {
		t.Error("LookupLevel should reject unknown names")
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		field core.Field
		want  string
	}{
		{String("k", "v"), "k=v"},
		{Int("n", 3), "n=3"},
		{Bool("ok", true), "ok=true"},
		{Err(errors.New("boom")), "error=boom"},
		{Err(nil), "error="},
		{NamedErr("cause", errors.New("x")), "cause=x"},
		{Stringer("lvl", WarnLevel), "lvl=WARN"},
		{Any("m", map[string]int{"a": 1}), "m=map[a:1]"},
	}
	for _, tt := range tests {
		if got := tt.field.String(); got != tt.want {
			t.Errorf("field = %q, want %q", got, tt.want)
		}
	}
}
