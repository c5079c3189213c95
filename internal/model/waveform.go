package model

// Version is the current release of vcdbw.
const Version = "v0.3.1"

// LineKind classifies a single line of the dump body.
type LineKind int

const (
	KindOther LineKind = iota
	KindTimestamp
	KindValueChange
)

func (k LineKind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindValueChange:
		return "value"
	default:
		return "other"
	}
}

// WaveformLine is one classified record of the dump body.
type WaveformLine struct {
	Kind   LineKind // Timestamp, ValueChange or Other
	Time   int64    // Simulation time, set for timestamps only
	Bit    byte     // '0' or '1', set for value changes only
	Raw    string   // The trimmed source line
	Number int      // 1-based line number in the dump
}

// Timestamp builds a timestamp marker line.
func Timestamp(t int64) WaveformLine {
	return WaveformLine{Kind: KindTimestamp, Time: t}
}

// ValueChange builds a value change line for the tracked signal.
func ValueChange(bit byte, raw string) WaveformLine {
	return WaveformLine{Kind: KindValueChange, Bit: bit, Raw: raw}
}

// Segment is the run of lines belonging to one tile execution window.
type Segment struct {
	Index    int            // 0-based position in the trace
	OpenedAt int64          // Simulation time current when the tile opened
	Lines    []WaveformLine // Timestamps and value changes, in file order
}

// Declaration is a single $var entry from the dump header.
type Declaration struct {
	Type      string // e.g. "wire", "reg"
	Size      int    // Bit width
	ID        string // Short identifier code used in the body (e.g. "!")
	Reference string // Signal name
	Range     string // Optional bit range, e.g. "[3:0]"
}
