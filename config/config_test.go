package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/logfan/core"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return file
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Name != "logfan" {
		t.Fatalf("Name = %q", cfg.Name)
	}
	if l, ok := cfg.Level.Level(); !ok || l != core.InfoLevel {
		t.Fatalf("Level = %v, %v", l, ok)
	}
	if cfg.Output.Sink != SinkConsole || cfg.Output.Format != FormatText {
		t.Fatalf("Output = %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != Default().Name {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	file := writeFile(t, "logfan.json", `{
		"name": "svc",
		"level": 500,
		"maxLevel": "error",
		"enabled": false,
		"filter": "tag != 'noise'",
		"transport": {"bufferCapacity": 8},
		"output": {"sink": "logrus", "format": "json", "maxLength": 20},
		"rateLimits": {"1s": 5}
	}`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "svc" || cfg.Filter != "tag != 'noise'" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Transport.BufferCapacity != 8 || cfg.Output.Sink != SinkLogrus || cfg.Output.MaxLength != 20 {
		t.Fatalf("nested = %+v %+v", cfg.Transport, cfg.Output)
	}
	if cfg.Output.Format != FormatJSON {
		t.Fatalf("Format = %q", cfg.Output.Format)
	}

	rc := cfg.RangeConfig()
	if rc.Level == nil || *rc.Level != core.WarnLevel {
		t.Errorf("Level = %v", rc.Level)
	}
	if rc.MaxLevel == nil || *rc.MaxLevel != core.ErrorLevel {
		t.Errorf("MaxLevel = %v", rc.MaxLevel)
	}
	if rc.MinLevel != nil {
		t.Errorf("MinLevel = %v, want nil", *rc.MinLevel)
	}
	if rc.Enabled == nil || *rc.Enabled {
		t.Errorf("Enabled = %v", rc.Enabled)
	}

	rates, err := cfg.Rates()
	if err != nil || rates[time.Second] != 5 {
		t.Errorf("Rates() = %v, %v", rates, err)
	}
}

func TestLoadJSON_FractionalLevel(t *testing.T) {
	file := writeFile(t, "logfan.json", `{"level": 299.6}`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if l, _ := cfg.Level.Level(); l != core.DebugLevel {
		t.Errorf("Level = %d, want 300", l)
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"syntax": `{"name":`,
		"level":  `{"level": true}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "bad.json", data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	file := writeFile(t, "logfan.toml", `
name = "svc"
level = "debug"
minLevel = 200
solo = "db"

[transport]
disableRecycling = true
defaultBroadcast = true

[output]
sink = "zap"
format = "json"
separator = " | "

[rateLimits]
"1m" = 100
"1s" = 10
`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "svc" || cfg.Solo != "db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.Transport.DisableRecycling || !cfg.Transport.DefaultBroadcast {
		t.Fatalf("Transport = %+v", cfg.Transport)
	}
	if cfg.Transport.BufferCapacity != core.DefaultBufferCapacity {
		t.Fatalf("BufferCapacity = %d, want default", cfg.Transport.BufferCapacity)
	}
	if cfg.Output.Sink != SinkZap || cfg.Output.Separator != " | " {
		t.Fatalf("Output = %+v", cfg.Output)
	}

	rc := cfg.RangeConfig()
	if *rc.Level != core.DebugLevel || *rc.MinLevel != core.TraceLevel {
		t.Errorf("range = %d..%d", *rc.MinLevel, *rc.Level)
	}
	rates, err := cfg.Rates()
	if err != nil || rates[time.Minute] != 100 || rates[time.Second] != 10 {
		t.Errorf("Rates() = %v, %v", rates, err)
	}
}

func TestLoadTOML_UnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, "logfan.toml", "levle = \"info\"\n"))
	if err == nil || !strings.Contains(err.Error(), "levle") {
		t.Fatalf("err = %v, want unknown key error", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("LOGFAN_NAME", "env")
	t.Setenv("LOGFAN_LEVEL", "warning")
	t.Setenv("LOGFAN_ENABLED", "false")
	t.Setenv("LOGFAN_SOLO", "db")
	t.Setenv("LOGFAN_BUFFER_CAPACITY", "16")
	t.Setenv("LOGFAN_DISABLE_RECYCLING", "true")
	t.Setenv("LOGFAN_SINK", "ZEROLOG")
	t.Setenv("LOGFAN_FORMAT", "json")
	t.Setenv("LOGFAN_MAX_LENGTH", "not-a-number")
	t.Setenv("LOGFAN_RATE_LIMITS", "1s=10, 1m = 100, junk")
	FromEnv(&cfg)

	if cfg.Name != "env" || cfg.Solo != "db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if l, ok := cfg.Level.Level(); !ok || l != core.WarnLevel {
		t.Fatalf("Level = %v, %v", l, ok)
	}
	if cfg.Enabled == nil || *cfg.Enabled {
		t.Fatalf("Enabled = %v", cfg.Enabled)
	}
	if cfg.Transport.BufferCapacity != 16 || !cfg.Transport.DisableRecycling {
		t.Fatalf("Transport = %+v", cfg.Transport)
	}
	if cfg.Output.Sink != SinkZerolog || cfg.Output.Format != FormatJSON {
		t.Fatalf("Output = %+v", cfg.Output)
	}
	if cfg.Output.MaxLength != 0 {
		t.Fatalf("MaxLength = %d, unparsable value should be ignored", cfg.Output.MaxLength)
	}
	if len(cfg.RateLimits) != 2 || cfg.RateLimits["1m"] != 100 {
		t.Fatalf("RateLimits = %v", cfg.RateLimits)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Level = "loud"
	cfg.Output.Sink = "syslog"
	cfg.Output.Format = "xml"
	cfg.RateLimits = map[string]int{"soon": 1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Fatalf("got %d errors, want 4: %v", n, err)
	}
}

func TestRates_NonPositive(t *testing.T) {
	for _, limits := range []map[string]int{
		{"1s": 0},
		{"-1s": 3},
	} {
		cfg := Config{RateLimits: limits}
		if _, err := cfg.Rates(); err == nil {
			t.Errorf("Rates(%v) expected error", limits)
		}
	}
}
