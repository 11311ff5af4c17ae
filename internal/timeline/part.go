package timeline

import (
	"sort"
	"time"
)

// PartStatus classifies whether a part was being worked at a point in time.
type PartStatus string

const (
	PartWorking    PartStatus = "WORKING"
	PartNotWorking PartStatus = "NO WORKING"
	PartNoData     PartStatus = "NO DATA"
)

// Colors used by the work-order detail view, keyed by part status.
const (
	ColorPartWorking    = "#2e7d32"
	ColorPartNotWorking = "#c62828"
	ColorPartNoData     = "#E5E7EB"
)

// Color returns the fixed display color token for a part status.
func (s PartStatus) Color() string {
	switch s {
	case PartWorking:
		return ColorPartWorking
	case PartNotWorking:
		return ColorPartNotWorking
	default:
		return ColorPartNoData
	}
}

// PartSegment is a maximal contiguous interval of one part-session state.
type PartSegment struct {
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	Status          PartStatus `json:"status"`
	DurationSeconds float64    `json:"duration"`
	Color           string     `json:"color"`
}

func partState(a Action) PartStatus {
	if a == ActionStart {
		return PartWorking
	}
	return PartNotWorking
}

// BuildPartSegments reconstructs a part's WORKING / NO WORKING timeline from
// its session action logs. The same window rules as BuildSegments apply:
// gap-free partition of [window.Start, min(window.End, now)], pre-window
// state carry-in (defaulting to NO WORKING), trailing NO DATA past now, and
// zero-length drop plus same-status merge. The boundary is the work order's
// creation instant: coverage before it renders as NO DATA regardless of
// older session logs, since the order did not exist yet.
func BuildPartSegments(logs []ActionLog, w Window, boundary, now time.Time) []PartSegment {
	if !w.Valid() {
		return nil
	}

	effEnd := w.End
	if now.Before(effEnd) {
		effEnd = now
	}
	if !effEnd.After(w.Start) {
		return appendPartSegment(nil, w.Start, w.End, PartNoData)
	}

	sorted := make([]ActionLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	state := PartNotWorking
	var segs []PartSegment
	cur := w.Start
	for _, l := range sorted {
		if l.Timestamp.Before(w.Start) {
			state = partState(l.Action)
			continue
		}
		if l.Timestamp.After(effEnd) {
			break
		}
		next := partState(l.Action)
		if next == state {
			continue
		}
		segs = appendBoundedPartSegment(segs, cur, l.Timestamp, state, boundary)
		cur = l.Timestamp
		state = next
	}
	segs = appendBoundedPartSegment(segs, cur, effEnd, state, boundary)

	if w.End.After(effEnd) {
		segs = appendPartSegment(segs, effEnd, w.End, PartNoData)
	}
	return segs
}

// appendBoundedPartSegment applies the work-order boundary before emitting:
// an interval entirely before the boundary degrades to NO DATA, and one
// straddling it splits at the boundary instant.
func appendBoundedPartSegment(segs []PartSegment, start, end time.Time, status PartStatus, boundary time.Time) []PartSegment {
	if !end.After(boundary) {
		return appendPartSegment(segs, start, end, PartNoData)
	}
	if start.Before(boundary) {
		segs = appendPartSegment(segs, start, boundary, PartNoData)
		start = boundary
	}
	return appendPartSegment(segs, start, end, status)
}

func appendPartSegment(segs []PartSegment, start, end time.Time, status PartStatus) []PartSegment {
	if !end.After(start) {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Status == status && segs[n-1].End.Equal(start) {
		segs[n-1].End = end
		segs[n-1].DurationSeconds = end.Sub(segs[n-1].Start).Seconds()
		return segs
	}
	return append(segs, PartSegment{
		Start:           start,
		End:             end,
		Status:          status,
		DurationSeconds: end.Sub(start).Seconds(),
		Color:           status.Color(),
	})
}

// PartSummary totals part-segment durations per state. NO DATA intervals
// are excluded.
type PartSummary struct {
	WorkingSeconds    float64 `json:"workingSeconds"`
	NotWorkingSeconds float64 `json:"notWorkingSeconds"`
	TotalSeconds      float64 `json:"totalSeconds"`
}

// SummarizePart aggregates a part-segment list into per-state totals.
func SummarizePart(segs []PartSegment) PartSummary {
	var s PartSummary
	for _, seg := range segs {
		switch seg.Status {
		case PartWorking:
			s.WorkingSeconds += seg.DurationSeconds
		case PartNotWorking:
			s.NotWorkingSeconds += seg.DurationSeconds
		}
	}
	s.TotalSeconds = s.WorkingSeconds + s.NotWorkingSeconds
	return s
}

// PartClockSummary is PartSummary formatted for stat-box display.
type PartClockSummary struct {
	Working    string `json:"working"`
	NotWorking string `json:"notWorking"`
	Total      string `json:"total"`
}

// Format renders every bucket as HH:MM:SS.
func (s PartSummary) Format() PartClockSummary {
	return PartClockSummary{
		Working:    FormatClock(s.WorkingSeconds),
		NotWorking: FormatClock(s.NotWorkingSeconds),
		Total:      FormatClock(s.TotalSeconds),
	}
}
