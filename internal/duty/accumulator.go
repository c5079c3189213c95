// Package duty integrates the time a request signal spends asserted.
//
// The accumulator is edge-triggered: a rising edge subtracts the current
// time and a falling edge adds it back, so up time is the sum of
// (fall - rise) over completed intervals without storing the intervals.
// Times are taken relative to the start of the trace or tile.
package duty

import (
	"iter"

	"vcdbw/internal/config"
	"vcdbw/internal/model"
)

type options struct {
	seeded bool
	start  int64
	tail   bool
	window config.Window
}

// Option configures an Accumulator.
type Option func(*options)

// WithStart fixes the start time instead of taking the first timestamp.
func WithStart(t int64) Option {
	return func(o *options) {
		o.seeded = true
		o.start = t
	}
}

// WithTailCorrection controls whether an interval still open when the
// sequence ends is counted up to the last timestamp. Enabled by default.
func WithTailCorrection(enabled bool) Option {
	return func(o *options) {
		o.tail = enabled
	}
}

// WithWindow restricts integration to the timestamps inside w.
func WithWindow(w config.Window) Option {
	return func(o *options) {
		o.window = w
	}
}

// Accumulator computes a DutyCycleResult from a sequence of waveform lines.
type Accumulator struct {
	opts    options
	started bool
	done    bool // Past the end of the window
	start   int64
	end     int64
	current int64
	up      int64
	prev    byte
	values  int
}

// NewAccumulator creates an accumulator with the signal initially low.
func NewAccumulator(opts ...Option) *Accumulator {
	o := options{tail: true}
	for _, opt := range opts {
		opt(&o)
	}
	a := &Accumulator{opts: o, prev: '0'}
	if o.seeded {
		a.started = true
		a.start = o.start
		a.end = o.start
		a.current = o.start
	}
	return a
}

// Observe feeds one line to the accumulator. Other lines are ignored.
func (a *Accumulator) Observe(l model.WaveformLine) {
	if a.done {
		return
	}
	switch l.Kind {
	case model.KindTimestamp:
		a.observeTime(l.Time)
	case model.KindValueChange:
		a.observeBit(l.Bit)
	}
}

func (a *Accumulator) observeTime(t int64) {
	w := a.opts.window
	if t < w.Start {
		a.current = t
		return
	}
	if w.End != 0 && t >= w.End {
		// Clip to the window end; nothing after it is counted.
		t = w.End
		a.done = true
	}
	a.current = t
	if !a.started {
		a.started = true
		a.start = t
	}
	a.end = t
}

func (a *Accumulator) observeBit(bit byte) {
	if !a.started && !a.opts.window.IsZero() {
		// Before the window: only the level matters.
		a.prev = bit
		return
	}
	a.values++

	var rel int64
	if a.started {
		rel = a.current - a.start
	}
	switch {
	case bit == '1' && a.prev == '0':
		a.up -= rel
	case bit == '0' && a.prev == '1':
		a.up += rel
	}
	a.prev = bit
}

// Result returns the statistics of everything observed so far.
func (a *Accumulator) Result() model.DutyCycleResult {
	up := a.up
	if a.opts.tail && a.prev == '1' {
		up += a.end - a.start
	}
	total := a.end - a.start
	return model.DutyCycleResult{
		StartTime:   a.start,
		EndTime:     a.end,
		UpTime:      up,
		TotalTime:   total,
		Utilization: model.Ratio(up, total),
		Values:      a.values,
	}
}

// AnalyzeLines runs a fresh accumulator over lines.
func AnalyzeLines(lines []model.WaveformLine, opts ...Option) model.DutyCycleResult {
	a := NewAccumulator(opts...)
	for _, l := range lines {
		a.Observe(l)
	}
	return a.Result()
}

// Analyze runs a fresh accumulator over a scanner sequence and returns the
// first error the sequence produces.
func Analyze(seq iter.Seq2[model.WaveformLine, error], opts ...Option) (model.DutyCycleResult, error) {
	a := NewAccumulator(opts...)
	for l, err := range seq {
		if err != nil {
			return model.DutyCycleResult{}, err
		}
		a.Observe(l)
	}
	return a.Result(), nil
}
