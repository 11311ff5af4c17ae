package timeline

import "time"

// HistoryRow is one line of the status history table: a real segment in
// reverse chronological order, annotated with the session active when the
// segment began.
type HistoryRow struct {
	No       int    `json:"no"`
	Status   Status `json:"status"`
	From     string `json:"from"`
	Until    string `json:"until"`
	Duration string `json:"duration"`
	ManPower string `json:"manPower"`
	Part     string `json:"part"`
}

const historyTimeLayout = "2006-01-02 15:04:05"

// HistoryRows builds the history table from a segment list. NO DATA
// segments are omitted. Stopped segments show no session: a stopped machine
// has nobody producing on it, whatever the product log says.
func HistoryRows(segs []Segment, logs []ActionLog) []HistoryRow {
	rows := make([]HistoryRow, 0, len(segs))
	for i := len(segs) - 1; i >= 0; i-- {
		seg := segs[i]
		if seg.Status == StatusNoData {
			continue
		}

		manpower, part := "-", "-"
		if seg.Status != StatusStopped && seg.Status != StatusUnknown {
			if s, ok := ActiveSession(logs, seg.Start); ok {
				manpower, part = s.Operator, s.Part
			}
		}

		rows = append(rows, HistoryRow{
			No:       len(rows) + 1,
			Status:   seg.Status,
			From:     seg.Start.UTC().Format(historyTimeLayout),
			Until:    seg.End.UTC().Format(historyTimeLayout),
			Duration: FormatClock(seg.DurationSeconds),
			ManPower: manpower,
			Part:     part,
		})
	}
	return rows
}

// DayWindow expands two calendar dates into a query window: start of the
// first day through end of the last. When the last day is today, End is the
// raw end-of-day instant and BuildSegments clips it to now.
func DayWindow(start, end time.Time) Window {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
	return Window{Start: s, End: e}
}
