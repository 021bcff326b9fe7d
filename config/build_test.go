package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/philipp01105/logfan/logger"
)

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Level = "warn"
	cfg.Output.Separator = " | "

	s, err := Build(cfg, &buf)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer s.Close()

	l := s.Logger("api")
	l.Info("hidden")
	l.Warn("slow", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN] [api] slow | 42") {
		t.Errorf("output = %q", out)
	}
	if s.Registry.Level() != logger.WarnLevel {
		t.Errorf("registry level = %d", s.Registry.Level())
	}
}

func TestBuild_DefaultBroadcastWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Output.Sink = SinkZap
	cfg.Output.Format = FormatJSON
	cfg.Transport.DefaultBroadcast = true

	s, err := Build(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Logger("api").Info("hello", 7)

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("missing zap line: %q", out)
	}
	if !strings.Contains(out, "[INFO] [api] hello :: 7\n") {
		t.Errorf("missing console mirror line: %q", out)
	}
}

func TestBuild_Filter(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Filter = `tag == "db"`

	s, err := Build(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Logger("api").Info("from api")
	s.Logger("db").Info("from db")

	if out := buf.String(); strings.Contains(out, "from api") || !strings.Contains(out, "from db") {
		t.Errorf("output = %q", out)
	}
}

func TestBuild_Solo(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Solo = "db"

	s, err := Build(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Logger("api").Error("api failure")
	s.Logger("db").Info("db detail")

	out := buf.String()
	if strings.Contains(out, "api failure") {
		t.Errorf("non-solo logger leaked: %q", out)
	}
	if !strings.Contains(out, "db detail") {
		t.Errorf("solo logger missing: %q", out)
	}
	if s.Registry.SoloLogger().Name() != "db" {
		t.Errorf("SoloLogger() = %q", s.Registry.SoloLogger().Name())
	}
}

func TestBuild_Sinks(t *testing.T) {
	for _, sink := range []string{SinkConsole, SinkZap, SinkZerolog, SinkLogrus, SinkSlog} {
		for _, format := range []string{FormatText, FormatJSON} {
			t.Run(sink+"/"+format, func(t *testing.T) {
				var buf bytes.Buffer
				cfg := Default()
				cfg.Output.Sink = sink
				cfg.Output.Format = format

				s, err := Build(cfg, &buf)
				if err != nil {
					t.Fatal(err)
				}
				defer s.Close()

				s.Logger("api").Info("hello")

				out := buf.String()
				if !strings.Contains(out, "hello") || !strings.Contains(out, "api") {
					t.Errorf("output = %q", out)
				}
				if format == FormatJSON && !strings.Contains(out, `"hello"`) {
					t.Errorf("expected JSON output, got %q", out)
				}
			})
		}
	}
}

func TestBuild_RateLimits(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.RateLimits = map[string]int{"1m": 1}

	s, err := Build(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	l := s.Logger("api")
	l.Info("first")
	l.Info("second")
	s.Logger("db").Info("other tag")

	out := buf.String()
	if !strings.Contains(out, "first") || strings.Contains(out, "second") || !strings.Contains(out, "other tag") {
		t.Errorf("output = %q", out)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"level", func(c *Config) { c.Level = "loud" }},
		{"sink", func(c *Config) { c.Output.Sink = "syslog" }},
		{"filter", func(c *Config) { c.Filter = "tag ==" }},
		{"rates", func(c *Config) { c.RateLimits = map[string]int{"1s": -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(&cfg)
			if _, err := Build(cfg, &bytes.Buffer{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSetup_Close(t *testing.T) {
	s, err := Build(Default(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	l := s.Logger("api")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !l.IsDestroyed() || !s.Transport.IsDestroyed() {
		t.Error("Close should destroy loggers and transport")
	}
	if err := s.Close(); !errors.Is(err, logger.ErrDestroyed) {
		t.Errorf("second Close() = %v, want ErrDestroyed", err)
	}
}
