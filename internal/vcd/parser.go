package vcd

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"vcdbw/internal/model"
)

// Parser scans a value change dump and classifies the lines of its body.
type Parser struct {
	signal Signal
}

// NewParser creates a Parser tracking the given signal. A nil signal tracks
// identifiers ending with DefaultSignalID.
func NewParser(sig Signal) *Parser {
	if sig == nil {
		sig = SuffixSignal{Suffix: DefaultSignalID}
	}
	return &Parser{signal: sig}
}

// Signal returns the tracked signal.
func (p *Parser) Signal() Signal {
	return p.signal
}

type scanState int

const (
	stateHeader   scanState = iota // Waiting for $enddefinitions
	stateSeekZero                  // Waiting for #0
	stateBody
)

// Parse returns a lazy, single-pass sequence over the classified body of the
// dump read from r. The header is skipped up to the end-of-definitions marker
// and the body starts at the first line beginning with #0 (inclusive).
//
// A non-nil error is always the last element of the sequence. A dump missing
// either marker ends with an error wrapping ErrMalformedHeader rather than
// yielding nothing.
func (p *Parser) Parse(r io.Reader) iter.Seq2[model.WaveformLine, error] {
	return func(yield func(model.WaveformLine, error) bool) {
		scanner := bufio.NewScanner(r)
		// Large buffer for long header lines
		buf := make([]byte, 0, 1024*1024)
		scanner.Buffer(buf, 10*1024*1024) // 10MB max line, should be enough

		state := stateHeader
		number := 0
		for scanner.Scan() {
			number++
			line := strings.TrimSpace(scanner.Text())

			switch state {
			case stateHeader:
				if line == EndDefinitions {
					state = stateSeekZero
				}
				continue
			case stateSeekZero:
				if !strings.HasPrefix(line, ZeroTimestamp) {
					continue
				}
				state = stateBody
			}

			if line == "" {
				continue
			}

			wl, err := Classify(line, number, p.signal)
			if err != nil {
				yield(wl, err)
				return
			}
			if !yield(wl, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(model.WaveformLine{}, fmt.Errorf("read error: %w", err))
			return
		}

		switch state {
		case stateHeader:
			yield(model.WaveformLine{}, fmt.Errorf("%w: %q not found", ErrMalformedHeader, EndDefinitions))
		case stateSeekZero:
			yield(model.WaveformLine{}, fmt.Errorf("%w: no %q timestamp after definitions", ErrMalformedHeader, ZeroTimestamp))
		}
	}
}

// Collect materializes a sequence, stopping at the first error.
func Collect(seq iter.Seq2[model.WaveformLine, error]) ([]model.WaveformLine, error) {
	var lines []model.WaveformLine
	for wl, err := range seq {
		if err != nil {
			return lines, err
		}
		lines = append(lines, wl)
	}
	return lines, nil
}

// ParseFile scans and collects the body of the dump at filename.
func (p *Parser) ParseFile(filename string) ([]model.WaveformLine, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Collect(p.Parse(file))
}
