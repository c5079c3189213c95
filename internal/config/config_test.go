package config

import (
	"errors"
	"testing"

	"vcdbw/internal/vcd"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.GapThreshold != 1_000_000 || cfg.ExpectedTiles != 8 || !cfg.TailCorrection {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Window.IsZero() {
		t.Errorf("default window should cover the whole trace")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative threshold": func(c *Config) { c.GapThreshold = -1 },
		"no tiles":           func(c *Config) { c.ExpectedTiles = 0 },
		"empty signal":       func(c *Config) { c.SignalID = "" },
		"inverted window":    func(c *Config) { c.Window = Window{Start: 10, End: 5} },
		"negative window":    func(c *Config) { c.Window = Window{Start: -10} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
		})
	}

	cfg := Default()
	cfg.SignalID = ""
	cfg.SignalName = "mem_req"
	if err := cfg.Validate(); err != nil {
		t.Errorf("signal name alone should be valid: %v", err)
	}
}

func TestLookupWindow(t *testing.T) {
	w, err := LookupWindow("16dp_5col")
	if err != nil {
		t.Fatal(err)
	}
	if w.Start != 54626340 || w.End != 70792964 || w.Gap != 1970174 {
		t.Errorf("unexpected preset: %+v", w)
	}
	if _, err := LookupWindow("2dp_3col"); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("got %v, want ErrUnknownWindow", err)
	}

	names := PresetNames()
	if len(names) != 4 || names[0] != "16dp_16col" {
		t.Errorf("preset names: %v", names)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 100, End: 200}
	for _, c := range []struct {
		t    int64
		want bool
	}{{99, false}, {100, true}, {200, true}, {201, false}} {
		if got := w.Contains(c.t); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.t, got, c.want)
		}
	}
	if !(Window{Start: 5}).Contains(1 << 40) {
		t.Errorf("open-ended window should contain late times")
	}
	if got := (Window{Name: "x", Start: 1}).String(); got != "x [1, end]" {
		t.Errorf("String: %q", got)
	}
}

func TestSignal(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.Signal().(vcd.SuffixSignal); !ok {
		t.Errorf("default signal should match by suffix")
	}
	cfg.ExactID = true
	cfg.SignalID = "%"
	sig, ok := cfg.Signal().(vcd.IdentifierSignal)
	if !ok || sig.ID != "%" {
		t.Errorf("exact signal: %#v", cfg.Signal())
	}
}
