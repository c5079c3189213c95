package vcd

import (
	"strings"
)

// DefaultSignalID is the identifier suffix of the tracked request signal.
const DefaultSignalID = "!"

// Signal identifies the tracked signal in value change lines and extracts
// its current bit. Only the leading bit of a vector is consulted.
type Signal interface {
	// Name describes the signal for reports.
	Name() string
	// Match reports whether line changes the tracked signal and, if so,
	// returns its new bit ('0' or '1').
	Match(line string) (bit byte, ok bool)
}

// SuffixSignal matches vector changes whose line ends with Suffix.
type SuffixSignal struct {
	Suffix string
}

func (s SuffixSignal) Name() string {
	return "*" + s.Suffix
}

func (s SuffixSignal) Match(line string) (byte, bool) {
	if !strings.HasPrefix(line, BinaryPrefix) || !strings.HasSuffix(line, s.Suffix) {
		return 0, false
	}
	value, _, _ := strings.Cut(line[len(BinaryPrefix):], " ")
	return leadingBit(value)
}

// IdentifierSignal matches the exact identifier code, either as a vector
// change ("b0101 id") or as a scalar change ("1id").
type IdentifierSignal struct {
	ID string
}

func (s IdentifierSignal) Name() string {
	return s.ID
}

func (s IdentifierSignal) Match(line string) (byte, bool) {
	if strings.HasPrefix(line, BinaryPrefix) {
		fields := strings.Fields(line[len(BinaryPrefix):])
		if len(fields) != 2 || fields[1] != s.ID {
			return 0, false
		}
		return leadingBit(fields[0])
	}
	if len(line) == len(s.ID)+1 && line[1:] == s.ID {
		return leadingBit(line[:1])
	}
	return 0, false
}

// leadingBit returns the first bit of a value when it is a defined level.
// Unknown ('x') and high-impedance ('z') levels are not value changes.
func leadingBit(value string) (byte, bool) {
	if value == "" {
		return 0, false
	}
	switch value[0] {
	case '0', '1':
		return value[0], true
	}
	return 0, false
}
