// Package tile splits a trace into tile execution windows separated by long
// idle gaps and aggregates the per-tile utilization.
package tile

import (
	"iter"

	"vcdbw/internal/config"
	"vcdbw/internal/model"
)

// Segmenter groups waveform lines into tiles. A tile opens on the first
// rising value of the tracked signal and closes at the first timestamp that
// lies more than GapThreshold after the last activity while the signal is
// low. Gaps while the signal is asserted never close a tile.
type Segmenter struct {
	GapThreshold int64

	segments     []model.Segment
	current      *model.Segment
	now          int64
	lastActivity int64
	prev         byte
}

// NewSegmenter creates a segmenter; a non-positive threshold selects the
// default.
func NewSegmenter(threshold int64) *Segmenter {
	if threshold <= 0 {
		threshold = config.DefaultGapThreshold
	}
	return &Segmenter{GapThreshold: threshold, prev: '0'}
}

// Observe feeds one line to the segmenter.
func (s *Segmenter) Observe(l model.WaveformLine) {
	switch l.Kind {
	case model.KindTimestamp:
		s.now = l.Time
		if s.current != nil && s.prev == '0' && s.now-s.lastActivity > s.GapThreshold {
			// The marker that reveals the gap belongs to neither tile.
			s.closeTile()
			return
		}
	case model.KindValueChange:
		if s.current == nil && l.Bit == '1' {
			s.current = &model.Segment{Index: len(s.segments), OpenedAt: s.now}
		}
		if l.Bit != s.prev {
			s.lastActivity = s.now
		}
		if s.current != nil {
			s.lastActivity = s.now
		}
		s.prev = l.Bit
	default:
		return
	}

	if s.current != nil {
		s.current.Lines = append(s.current.Lines, l)
	}
}

func (s *Segmenter) closeTile() {
	s.segments = append(s.segments, *s.current)
	s.current = nil
}

// Segments flushes a tile still open at the end of input and returns all
// tiles in time order.
func (s *Segmenter) Segments() []model.Segment {
	if s.current != nil && len(s.current.Lines) > 0 {
		s.closeTile()
	}
	return s.segments
}

// Split segments a materialized line sequence.
func Split(lines []model.WaveformLine, threshold int64) []model.Segment {
	s := NewSegmenter(threshold)
	for _, l := range lines {
		s.Observe(l)
	}
	return s.Segments()
}

// SplitSeq segments a scanner sequence, stopping at its first error.
func SplitSeq(seq iter.Seq2[model.WaveformLine, error], threshold int64) ([]model.Segment, error) {
	s := NewSegmenter(threshold)
	for l, err := range seq {
		if err != nil {
			return nil, err
		}
		s.Observe(l)
	}
	return s.Segments(), nil
}
