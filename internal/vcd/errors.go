package vcd

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader reports a dump whose header never reaches the
	// end-of-definitions marker or whose body never reaches #0.
	ErrMalformedHeader = errors.New("malformed VCD header")

	// ErrUnparsableTimestamp reports a timestamp line with a non-integer time.
	ErrUnparsableTimestamp = errors.New("unparsable timestamp")

	// ErrUnknownSignal reports a signal name missing from the header.
	ErrUnknownSignal = errors.New("unknown signal")
)

// TimestampError carries the position of an unparsable timestamp line.
type TimestampError struct {
	Line int    // 1-based line number
	Text string // The offending line
	Err  error  // Underlying strconv error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("line %d: %v %q: %v", e.Line, ErrUnparsableTimestamp, e.Text, e.Err)
}

// Unwrap lets errors.Is match both ErrUnparsableTimestamp and the cause.
func (e *TimestampError) Unwrap() []error {
	return []error{ErrUnparsableTimestamp, e.Err}
}
