package core

import (
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{VerboseLevel, "VERBOSE"},
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{Level(450), "L-450"},
		{Level(0), "L-0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelNameMap_UpdateAndReset(t *testing.T) {
	m := NewLevelNameMap()
	m.Update(map[string]Level{"NOTICE": 450, "LOUD": WarnLevel})

	if got := m.Get(450); got != "NOTICE" {
		t.Errorf("Get(450) = %q, want NOTICE", got)
	}
	if got := m.Get(WarnLevel); got != "LOUD" {
		t.Errorf("Get(WarnLevel) = %q, want LOUD", got)
	}
	if l, ok := m.Lookup("NOTICE"); !ok || l != 450 {
		t.Errorf("Lookup(NOTICE) = %v, %v", l, ok)
	}

	m.Reset()
	if got := m.Get(450); got != "L-450" {
		t.Errorf("after Reset Get(450) = %q, want L-450", got)
	}
	if got := m.Get(WarnLevel); got != "WARN" {
		t.Errorf("after Reset Get(WarnLevel) = %q, want WARN", got)
	}
}

func TestLevelNameMap_Customizer(t *testing.T) {
	m := NewLevelNameMap()
	m.SetCustomizer(func(l Level) string { return "custom" })

	if got := m.Get(7); got != "custom" {
		t.Errorf("Get(7) = %q, want custom", got)
	}
	if got := m.Get(InfoLevel); got != "INFO" {
		t.Errorf("named levels must not use the customizer, got %q", got)
	}

	m.SetCustomizer(nil)
	if got := m.Get(7); got != "L-7" {
		t.Errorf("nil customizer should restore the default, got %q", got)
	}
}

func BenchmarkLevelString(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = InfoLevel.String()
	}
}
