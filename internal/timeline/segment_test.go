package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed.UTC()
}

// assertTiling verifies property 1: segments exactly tile [w.Start, w.End]
// (the trailing NO DATA segment included) with no gaps and no overlaps.
func assertTiling(t *testing.T, segs []Segment, w Window) {
	t.Helper()
	require.NotEmpty(t, segs)
	assert.True(t, segs[0].Start.Equal(w.Start), "first segment must start at window start")
	assert.True(t, segs[len(segs)-1].End.Equal(w.End), "last segment must end at window end")
	for i := 1; i < len(segs); i++ {
		assert.True(t, segs[i].Start.Equal(segs[i-1].End),
			"segment %d must start where segment %d ends", i, i-1)
	}
}

// assertNoAdjacentDuplicates verifies property 2.
func assertNoAdjacentDuplicates(t *testing.T, segs []Segment) {
	t.Helper()
	for i := 1; i < len(segs); i++ {
		assert.NotEqual(t, segs[i-1].Status, segs[i].Status,
			"segments %d and %d share a status", i-1, i)
	}
}

func TestBuildSegments_NoEvents(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")

	segs := BuildSegments(nil, w, now)

	require.Len(t, segs, 1)
	assert.Equal(t, StatusNoData, segs[0].Status)
	assert.Equal(t, float64(86399), segs[0].DurationSeconds)
	assert.Equal(t, ColorNoData, segs[0].Color)
	assertTiling(t, segs, w)
}

func TestBuildSegments_GapFillAndClosedWindow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
		{Timestamp: ts(t, "2024-01-01T10:00:00Z"), Status: StatusStopped},
	}

	segs := BuildSegments(events, w, now)

	require.Len(t, segs, 3)
	assert.Equal(t, StatusNoData, segs[0].Status)
	assert.Equal(t, float64(28800), segs[0].DurationSeconds)
	assert.Equal(t, StatusRunning, segs[1].Status)
	assert.Equal(t, float64(7200), segs[1].DurationSeconds)
	assert.Equal(t, StatusStopped, segs[2].Status)
	assert.Equal(t, float64(50399), segs[2].DurationSeconds)

	assertTiling(t, segs, w)
	assertNoAdjacentDuplicates(t, segs)

	sum := Summarize(segs).Format()
	assert.Equal(t, "02:00:00", sum.Running)
	assert.Equal(t, "13:59:59", sum.Stop)
	assert.Equal(t, "15:59:59", sum.Total)
}

func TestBuildSegments_FutureWindowEndClipsToNow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-02T23:59:59Z")}
	now := ts(t, "2024-01-01T12:00:00Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
	}

	segs := BuildSegments(events, w, now)

	require.Len(t, segs, 3)
	assert.Equal(t, StatusNoData, segs[0].Status)
	assert.True(t, segs[0].End.Equal(events[0].Timestamp))

	// The last known status extends up to now, not the window end.
	assert.Equal(t, StatusRunning, segs[1].Status)
	assert.True(t, segs[1].End.Equal(now))

	assert.Equal(t, StatusNoData, segs[2].Status)
	assert.True(t, segs[2].Start.Equal(now))
	assert.True(t, segs[2].End.Equal(w.End))

	assertTiling(t, segs, w)
	assertNoAdjacentDuplicates(t, segs)
}

func TestBuildSegments_MergesConsecutiveSameStatus(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
		{Timestamp: ts(t, "2024-01-01T09:00:00Z"), Status: StatusRunning},
	}

	segs := BuildSegments(events, w, now)

	require.Len(t, segs, 2)
	assert.Equal(t, StatusRunning, segs[1].Status)
	assert.True(t, segs[1].Start.Equal(events[0].Timestamp))
	assert.True(t, segs[1].End.Equal(w.End))
	assertNoAdjacentDuplicates(t, segs)
}

func TestBuildSegments_PreWindowStateCarriesIn(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-02T00:00:00Z"), End: ts(t, "2024-01-02T23:59:59Z")}
	now := ts(t, "2024-01-02T23:59:59Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T06:00:00Z"), Status: StatusStandby},
		{Timestamp: ts(t, "2024-01-01T22:00:00Z"), Status: StatusRunning},
		{Timestamp: ts(t, "2024-01-02T04:00:00Z"), Status: StatusStopped},
	}

	segs := BuildSegments(events, w, now)

	// The standby episode ended before the window; the running state that
	// was current at midnight carries in, clipped to the window start.
	require.Len(t, segs, 2)
	assert.Equal(t, StatusRunning, segs[0].Status)
	assert.True(t, segs[0].Start.Equal(w.Start))
	assert.Equal(t, StatusStopped, segs[1].Status)
	assertTiling(t, segs, w)
}

func TestBuildSegments_EventExactlyAtWindowStart(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	events := []Event{
		{Timestamp: w.Start, Status: StatusRunning},
	}

	segs := BuildSegments(events, w, now)

	// No synthetic leading segment when coverage starts at the boundary.
	require.Len(t, segs, 1)
	assert.Equal(t, StatusRunning, segs[0].Status)
	assertTiling(t, segs, w)
}

func TestBuildSegments_EqualTimestampsLaterEventWins(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	at := ts(t, "2024-01-01T08:00:00Z")
	events := []Event{
		{Timestamp: at, Status: StatusRunning},
		{Timestamp: at, Status: StatusStandby},
	}

	segs := BuildSegments(events, w, now)

	require.Len(t, segs, 2)
	assert.Equal(t, StatusStandby, segs[1].Status)
	assertTiling(t, segs, w)
}

func TestBuildSegments_InvalidWindow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-02T00:00:00Z"), End: ts(t, "2024-01-01T00:00:00Z")}
	segs := BuildSegments(nil, w, ts(t, "2024-01-02T00:00:00Z"))
	assert.Nil(t, segs)
}

func TestBuildSegments_WindowEntirelyInFuture(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-05T00:00:00Z"), End: ts(t, "2024-01-05T23:59:59Z")}
	now := ts(t, "2024-01-01T12:00:00Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
	}

	segs := BuildSegments(events, w, now)

	require.Len(t, segs, 1)
	assert.Equal(t, StatusNoData, segs[0].Status)
	assertTiling(t, segs, w)
}

func TestBuildSegments_ClockSkewEventAfterNow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T12:00:00Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
		// Device clock a bit ahead of ours; falls into normal clipping.
		{Timestamp: ts(t, "2024-01-01T12:00:03Z"), Status: StatusStopped},
	}

	segs := BuildSegments(events, w, now)

	assertTiling(t, segs, w)
	assertNoAdjacentDuplicates(t, segs)
	for _, seg := range segs {
		assert.GreaterOrEqual(t, seg.DurationSeconds, float64(0))
		assert.Greater(t, seg.End.Sub(seg.Start), time.Duration(0), "zero-length segments must be dropped")
	}
	// Nothing real may extend past now.
	for _, seg := range segs {
		if seg.Status != StatusNoData {
			assert.False(t, seg.End.After(now))
		}
	}
}

func TestBuildSegments_Idempotent(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T18:30:00Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T03:15:00Z"), Status: StatusStandby},
		{Timestamp: ts(t, "2024-01-01T08:00:00Z"), Status: StatusRunning},
		{Timestamp: ts(t, "2024-01-01T10:00:00Z"), Status: StatusStopped},
	}

	first := BuildSegments(events, w, now)
	second := BuildSegments(events, w, now)

	assert.Equal(t, first, second)
}

func TestBuildSegments_SummaryConsistency(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-02T23:59:59Z")}
	now := ts(t, "2024-01-02T07:45:10Z")
	events := []Event{
		{Timestamp: ts(t, "2024-01-01T02:00:00Z"), Status: StatusRunning},
		{Timestamp: ts(t, "2024-01-01T09:30:00Z"), Status: StatusStandby},
		{Timestamp: ts(t, "2024-01-01T09:30:00Z"), Status: StatusStopped},
		{Timestamp: ts(t, "2024-01-02T01:00:00Z"), Status: StatusRunning},
	}

	segs := BuildSegments(events, w, now)
	sum := Summarize(segs)

	var real float64
	for _, seg := range segs {
		if seg.Status != StatusNoData {
			real += seg.DurationSeconds
		}
	}
	assert.Equal(t, real, sum.TotalSeconds)
	assert.Equal(t, sum.RunningSeconds+sum.StandbySeconds+sum.StoppedSeconds, sum.TotalSeconds)
}
