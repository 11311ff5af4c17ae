// Package timeline reconstructs gap-free machine run/standby/stop timelines
// from sparse status events, and cross-references them against operator and
// part session logs. It is pure computation: no I/O, no retained state, and
// every call allocates fresh output, so concurrent invocations are safe.
package timeline

// Result bundles everything one timeline query produces.
type Result struct {
	Segments []Segment    `json:"segments"`
	Summary  Summary      `json:"summary"`
	Clock    ClockSummary `json:"clockSummary"`
	History  []HistoryRow `json:"history"`
}

// Compute runs the whole engine for one machine and window: normalize,
// segment, clip, aggregate, and annotate with sessions. The clock is read
// once at call time, so repeated polling sees the live edge advance.
func Compute(raw []RawEvent, logs []ActionLog, w Window, classify Classifier, clock Clock) Result {
	if clock == nil {
		clock = SystemClock{}
	}
	now := clock.Now()

	events := Normalize(raw, w, classify, now)
	segs := BuildSegments(events, w, now)
	summary := Summarize(segs)

	return Result{
		Segments: segs,
		Summary:  summary,
		Clock:    summary.Format(),
		History:  HistoryRows(segs, logs),
	}
}
