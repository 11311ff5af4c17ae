package timeline

import (
	"sort"
	"strings"
	"time"
)

// RawEvent is a status observation as stored by the ingest pipeline: a
// timestamp string of unspecified precision and a raw numeric status code.
type RawEvent struct {
	Timestamp string
	Code      float64
}

// Event is a normalized status observation.
type Event struct {
	Timestamp time.Time
	Status    Status
}

// Window is the half-open-ish query range [Start, End]. End may lie in the
// future relative to the wall clock.
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window is usable. Date pickers can transiently
// produce end < start mid-edit, which callers treat as a no-op.
func (w Window) Valid() bool {
	return !w.End.Before(w.Start)
}

// utcLayouts are the timestamp shapes produced by the database and the floor
// gateway. All stored timestamps are UTC-naive and must be interpreted as
// UTC, never local time.
var utcLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseUTC parses a stored timestamp string as UTC. Values without an
// explicit zone marker are treated as UTC. Unparsable values fail closed to
// fallback so a bad row can never break a render.
func ParseUTC(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range utcLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

// Normalize converts raw events into sorted, classified events, discarding
// any event strictly after the window end. The sort is stable: equal
// timestamps keep their input order, and the segmenter lets the later one
// win for the state beginning at that instant.
func Normalize(raw []RawEvent, w Window, classify Classifier, now time.Time) []Event {
	if classify == nil {
		classify = DefaultClassifier
	}

	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		t := ParseUTC(r.Timestamp, now)
		if t.After(w.End) {
			continue
		}
		events = append(events, Event{Timestamp: t, Status: classify(r.Code)})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}
