package timeline

import "time"

// Segment is a maximal contiguous interval with one status classification.
// For one query, segments form a gap-free, non-overlapping partition of
// [window.Start, effectiveEnd], plus a trailing NO DATA segment when the
// requested end lies beyond the current instant.
type Segment struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Status          Status    `json:"status"`
	DurationSeconds float64   `json:"duration"`
	Color           string    `json:"color"`
}

// BuildSegments walks sorted events and emits the gap-filled timeline for
// the window, clipped to now. Rules:
//
//   - end < start is a defined no-op (nil).
//   - No usable events, or the whole window in the future: one NO DATA
//     segment spanning the window.
//   - Coverage missing before the first event becomes a leading NO DATA
//     segment.
//   - A pre-window event's state carries in: its segment start is clipped
//     to the window start.
//   - The last known status extends up to effectiveEnd = min(end, now);
//     if the window end is beyond now, one NO DATA segment covers the rest.
//   - Zero-length segments are dropped, adjacent same-status segments are
//     merged, so consecutive same-state events never appear as churn.
//
// Events must already be sorted ascending (see Normalize). With equal
// timestamps the later event wins: the earlier one yields a zero-length
// segment and is dropped.
func BuildSegments(events []Event, w Window, now time.Time) []Segment {
	if !w.Valid() {
		return nil
	}

	effEnd := w.End
	if now.Before(effEnd) {
		effEnd = now
	}

	if len(events) == 0 || !effEnd.After(w.Start) {
		return appendSegment(nil, w.Start, w.End, StatusNoData)
	}

	var segs []Segment

	if first := events[0].Timestamp; first.After(w.Start) {
		end := first
		if end.After(effEnd) {
			end = effEnd
		}
		segs = appendSegment(segs, w.Start, end, StatusNoData)
	}

	for i, ev := range events {
		start := ev.Timestamp
		if start.Before(w.Start) {
			start = w.Start
		}
		end := effEnd
		if i+1 < len(events) {
			end = events[i+1].Timestamp
			if end.After(effEnd) {
				end = effEnd
			}
		}
		segs = appendSegment(segs, start, end, ev.Status)
	}

	if w.End.After(effEnd) {
		segs = appendSegment(segs, effEnd, w.End, StatusNoData)
	}

	return segs
}

// appendSegment drops empty intervals and merges into the previous segment
// when the status repeats.
func appendSegment(segs []Segment, start, end time.Time, status Status) []Segment {
	if !end.After(start) {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Status == status {
		prev := &segs[n-1]
		prev.End = end
		prev.DurationSeconds = prev.End.Sub(prev.Start).Seconds()
		return segs
	}
	return append(segs, Segment{
		Start:           start,
		End:             end,
		Status:          status,
		DurationSeconds: end.Sub(start).Seconds(),
		Color:           status.Color(),
	})
}
