package tile

import (
	"errors"
	"fmt"

	"vcdbw/internal/duty"
	"vcdbw/internal/model"
)

// ErrTileCountMismatch is advisory: the analysis still completes.
var ErrTileCountMismatch = errors.New("tile count mismatch")

// CheckCount compares the detected tile count with the expected one.
func CheckCount(detected, expected int) error {
	if detected == expected {
		return nil
	}
	return fmt.Errorf("%w: Detected %d tiles, but expected %d", ErrTileCountMismatch, detected, expected)
}

// Analyze runs an accumulator over every segment, starting each one at the
// time its tile opened, and aggregates the results. Options apply to every
// tile; tail correction is on unless disabled.
func Analyze(segments []model.Segment, expected int, opts ...duty.Option) model.TileReport {
	report := model.TileReport{Expected: expected}

	for _, seg := range segments {
		tileOpts := append([]duty.Option{duty.WithStart(seg.OpenedAt)}, opts...)
		r := duty.AnalyzeLines(seg.Lines, tileOpts...)

		report.Tiles = append(report.Tiles, r)
		report.UpTime += r.UpTime
		report.ActiveTime += r.TotalTime
	}

	if n := len(report.Tiles); n > 0 {
		report.SpanTime = report.Tiles[n-1].EndTime - report.Tiles[0].StartTime
	}
	report.ActiveUtilization = model.Ratio(report.UpTime, report.ActiveTime)
	report.SpanUtilization = model.Ratio(report.UpTime, report.SpanTime)

	if err := CheckCount(len(report.Tiles), expected); err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Detected %d tiles, but expected %d", len(report.Tiles), expected))
	}
	return report
}
