package timeline

import (
	"fmt"
	"math"
)

// Summary totals segment durations per status bucket. NO DATA intervals are
// excluded; unknown states count as stopped time, since an unclassifiable
// machine is by definition not producing.
type Summary struct {
	RunningSeconds float64 `json:"runningSeconds"`
	StandbySeconds float64 `json:"standbySeconds"`
	StoppedSeconds float64 `json:"stoppedSeconds"`
	TotalSeconds   float64 `json:"totalSeconds"`
}

// Summarize aggregates a segment list into per-status totals.
func Summarize(segs []Segment) Summary {
	var s Summary
	for _, seg := range segs {
		switch seg.Status {
		case StatusNoData:
			continue
		case StatusRunning:
			s.RunningSeconds += seg.DurationSeconds
		case StatusStandby:
			s.StandbySeconds += seg.DurationSeconds
		default:
			s.StoppedSeconds += seg.DurationSeconds
		}
	}
	s.TotalSeconds = s.RunningSeconds + s.StandbySeconds + s.StoppedSeconds
	return s
}

// FormatClock renders a second count as zero-padded HH:MM:SS. Hours are not
// wrapped into days: 30.25h renders as "30:15:00". Negative or NaN input
// clamps to zero so the formatter can never emit garbage into a render.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ClockSummary is Summary formatted for stat-box display.
type ClockSummary struct {
	Running string `json:"running"`
	Standby string `json:"standby"`
	Stop    string `json:"stop"`
	Total   string `json:"total"`
}

// Format renders every bucket as HH:MM:SS.
func (s Summary) Format() ClockSummary {
	return ClockSummary{
		Running: FormatClock(s.RunningSeconds),
		Standby: FormatClock(s.StandbySeconds),
		Stop:    FormatClock(s.StoppedSeconds),
		Total:   FormatClock(s.TotalSeconds),
	}
}
