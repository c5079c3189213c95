package model

// DutyCycleResult holds the utilization statistics of a trace or tile.
type DutyCycleResult struct {
	StartTime   int64   `json:"start_time"`
	EndTime     int64   `json:"end_time"`
	UpTime      int64   `json:"up_time"`
	TotalTime   int64   `json:"total_time"`
	Utilization float64 `json:"utilization"`
	Values      int     `json:"num_values"`
}

// DownTime is the part of the total time the signal spent deasserted.
func (r DutyCycleResult) DownTime() int64 {
	return r.TotalTime - r.UpTime
}

// TileReport aggregates the per-tile results of a segmented trace.
type TileReport struct {
	Tiles             []DutyCycleResult `json:"tiles"`
	Expected          int               `json:"expected_tiles"`
	UpTime            int64             `json:"up_time"`
	ActiveTime        int64             `json:"active_time"` // Sum of tile durations
	SpanTime          int64             `json:"span_time"`   // First tile start to last tile end
	ActiveUtilization float64           `json:"active_utilization"`
	SpanUtilization   float64           `json:"span_utilization"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// Mismatch reports whether the number of detected tiles differs from the
// expected count.
func (r TileReport) Mismatch() bool {
	return len(r.Tiles) != r.Expected
}

// Gaps returns the idle time between consecutive tiles.
func (r TileReport) Gaps() []int64 {
	if len(r.Tiles) < 2 {
		return nil
	}
	gaps := make([]int64, 0, len(r.Tiles)-1)
	for i := 1; i < len(r.Tiles); i++ {
		gaps = append(gaps, r.Tiles[i].StartTime-r.Tiles[i-1].EndTime)
	}
	return gaps
}

// Ratio divides up by total, returning 0 for an empty duration.
func Ratio(up, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(up) / float64(total)
}
