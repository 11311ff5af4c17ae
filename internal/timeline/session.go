package timeline

import "time"

// Sentinel labels for instants with no active operator/part session.
const (
	NoOperator   = "No Operator"
	NoPartActive = "No Part Active"
)

// Action marks whether an action log opened or closed a session.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// ActionLog is one start/stop record from the product log: an operator
// beginning or ending work on a part at a machine.
type ActionLog struct {
	Timestamp time.Time
	Action    Action
	Operator  string
	Part      string
}

// Session identifies the operator+part combination active at some instant.
type Session struct {
	Operator string `json:"operator"`
	Part     string `json:"part"`
}

// NoSession is the sentinel value returned when no session is active.
func NoSession() Session {
	return Session{Operator: NoOperator, Part: NoPartActive}
}

// ActiveSession resolves which session, if any, was active at instant t:
// the most recent start at or before t for which no stop exists in
// (start, t]. Session state is independent of the machine status stream, so
// this is evaluated fresh per instant rather than carried across segments.
func ActiveSession(logs []ActionLog, t time.Time) (Session, bool) {
	var start *ActionLog
	for i := range logs {
		l := &logs[i]
		if l.Action != ActionStart || l.Timestamp.After(t) {
			continue
		}
		if start == nil || l.Timestamp.After(start.Timestamp) {
			start = l
		}
	}
	if start == nil {
		return NoSession(), false
	}

	for i := range logs {
		l := &logs[i]
		if l.Action != ActionStop {
			continue
		}
		if l.Timestamp.After(start.Timestamp) && !l.Timestamp.After(t) {
			return NoSession(), false
		}
	}

	return Session{Operator: start.Operator, Part: start.Part}, true
}
