package vcd

import (
	"strconv"
	"strings"

	"vcdbw/internal/model"
)

// Structural markers and line prefixes of the dump format.
const (
	EndDefinitions  = "$enddefinitions $end"
	ZeroTimestamp   = "#0"
	TimestampPrefix = "#"
	BinaryPrefix    = "b"
)

// IsTimestamp reports whether a trimmed line advances simulation time.
func IsTimestamp(line string) bool {
	return strings.HasPrefix(line, TimestampPrefix)
}

// Classify turns one line of the dump body into a WaveformLine. number is
// the 1-based line number, kept for diagnostics.
func Classify(line string, number int, sig Signal) (model.WaveformLine, error) {
	line = strings.TrimSpace(line)
	wl := model.WaveformLine{Raw: line, Number: number}

	if IsTimestamp(line) {
		fields := strings.Fields(line[len(TimestampPrefix):])
		if len(fields) == 0 {
			return wl, &TimestampError{Line: number, Text: line, Err: strconv.ErrSyntax}
		}
		t, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return wl, &TimestampError{Line: number, Text: line, Err: err}
		}
		wl.Kind = model.KindTimestamp
		wl.Time = t
		return wl, nil
	}

	if bit, ok := sig.Match(line); ok {
		wl.Kind = model.KindValueChange
		wl.Bit = bit
	}
	return wl, nil
}
