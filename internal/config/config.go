package config

import (
	"errors"
	"fmt"
	"sort"

	"vcdbw/internal/vcd"
)

var (
	ErrUnknownWindow = errors.New("unknown tile window")
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	DefaultGapThreshold  = 1_000_000
	DefaultExpectedTiles = 8
)

// Window bounds the part of a trace that is analyzed. The zero value covers
// the whole trace.
type Window struct {
	Name  string `json:"name,omitempty"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`           // 0 means until the end of the trace
	Gap   int64  `json:"gap,omitempty"` // Observed idle gap between tiles, informational
}

// IsZero reports whether the window covers the whole trace.
func (w Window) IsZero() bool {
	return w.Start == 0 && w.End == 0
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t int64) bool {
	if t < w.Start {
		return false
	}
	return w.End == 0 || t <= w.End
}

func (w Window) String() string {
	name := w.Name
	if name == "" {
		name = "custom"
	}
	if w.End == 0 {
		return fmt.Sprintf("%s [%d, end]", name, w.Start)
	}
	return fmt.Sprintf("%s [%d, %d]", name, w.Start, w.End)
}

// Presets are the tile windows measured for the accelerator configurations,
// named <dataflow-parallelism>dp_<columns>col.
var Presets = map[string]Window{
	"1dp_16col":  {Name: "1dp_16col", Start: 123489120, End: 379358470},
	"16dp_5col":  {Name: "16dp_5col", Start: 54626340, End: 70792964, Gap: 1970174},
	"16dp_16col": {Name: "16dp_16col", Start: 56377902, End: 82708651},
	"16dp_26col": {Name: "16dp_26col", Start: 57985500, End: 95442800},
}

// LookupWindow returns the preset called name.
func LookupWindow(name string) (Window, error) {
	w, ok := Presets[name]
	if !ok {
		return Window{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownWindow, name, PresetNames())
	}
	return w, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config holds the settings of one analysis run.
type Config struct {
	SignalID       string // Identifier (or identifier suffix) of the tracked signal
	SignalName     string // Optional $var reference, resolved to SignalID from the header
	ExactID        bool   // Match SignalID exactly instead of as a suffix
	GapThreshold   int64  // Idle time that separates two tiles
	ExpectedTiles  int    // Only used for the tile count warning
	TailCorrection bool   // Close an interval still open at the end of the trace
	Window         Window
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		SignalID:       vcd.DefaultSignalID,
		GapThreshold:   DefaultGapThreshold,
		ExpectedTiles:  DefaultExpectedTiles,
		TailCorrection: true,
	}
}

// Validate checks the configuration for values the analysis cannot use.
func (c Config) Validate() error {
	if c.SignalID == "" && c.SignalName == "" {
		return fmt.Errorf("%w: empty signal identifier", ErrInvalidConfig)
	}
	if c.GapThreshold < 0 {
		return fmt.Errorf("%w: negative gap threshold %d", ErrInvalidConfig, c.GapThreshold)
	}
	if c.ExpectedTiles < 1 {
		return fmt.Errorf("%w: expected tiles must be at least 1, got %d", ErrInvalidConfig, c.ExpectedTiles)
	}
	if c.Window.Start < 0 || c.Window.End < 0 {
		return fmt.Errorf("%w: negative window bound in %s", ErrInvalidConfig, c.Window)
	}
	if c.Window.End != 0 && c.Window.End < c.Window.Start {
		return fmt.Errorf("%w: window ends before it starts: %s", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Signal builds the tracked signal matcher for this configuration.
func (c Config) Signal() vcd.Signal {
	if c.ExactID {
		return vcd.IdentifierSignal{ID: c.SignalID}
	}
	return vcd.SuffixSignal{Suffix: c.SignalID}
}
