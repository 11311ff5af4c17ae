package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPartTiling(t *testing.T, segs []PartSegment, w Window) {
	t.Helper()
	require.NotEmpty(t, segs)
	assert.True(t, segs[0].Start.Equal(w.Start), "first segment must start at window start")
	assert.True(t, segs[len(segs)-1].End.Equal(w.End), "last segment must end at window end")
	for i := 1; i < len(segs); i++ {
		assert.True(t, segs[i].Start.Equal(segs[i-1].End),
			"segment %d must start where segment %d ends", i, i-1)
	}
}

func startLog(t *testing.T, s string) ActionLog {
	t.Helper()
	return ActionLog{Timestamp: ts(t, s), Action: ActionStart, Operator: "Budi", Part: "PART-A"}
}

func stopLog(t *testing.T, s string) ActionLog {
	t.Helper()
	return ActionLog{Timestamp: ts(t, s), Action: ActionStop, Operator: "Budi", Part: "PART-A"}
}

func TestBuildPartSegments_NoLogsDefaultsToNotWorking(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")

	segs := BuildPartSegments(nil, w, boundary, now)

	require.Len(t, segs, 1)
	assert.Equal(t, PartNotWorking, segs[0].Status)
	assert.Equal(t, ColorPartNotWorking, segs[0].Color)
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_SessionWindow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")
	logs := []ActionLog{
		startLog(t, "2024-01-01T08:00:00Z"),
		stopLog(t, "2024-01-01T10:00:00Z"),
	}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 3)
	assert.Equal(t, PartNotWorking, segs[0].Status)
	assert.Equal(t, PartWorking, segs[1].Status)
	assert.Equal(t, float64(7200), segs[1].DurationSeconds)
	assert.Equal(t, PartNotWorking, segs[2].Status)
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_OrderCreationForcesNoDataBefore(t *testing.T) {
	// The session began hours before the work order was created. Everything
	// up to the creation instant must read NO DATA, and the working state
	// only shows from that instant on.
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2024-01-01T08:00:00Z")
	logs := []ActionLog{startLog(t, "2024-01-01T02:00:00Z")}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 2)
	assert.Equal(t, PartNoData, segs[0].Status)
	assert.True(t, segs[0].End.Equal(boundary))
	assert.Equal(t, PartWorking, segs[1].Status)
	assert.True(t, segs[1].Start.Equal(boundary))
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_OrderCreatedAfterWindow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2024-01-02T00:00:00Z")
	logs := []ActionLog{
		startLog(t, "2024-01-01T08:00:00Z"),
		stopLog(t, "2024-01-01T10:00:00Z"),
	}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 1)
	assert.Equal(t, PartNoData, segs[0].Status)
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_PreWindowStartCarriesIn(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")
	logs := []ActionLog{startLog(t, "2023-12-31T22:00:00Z")}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 1)
	assert.Equal(t, PartWorking, segs[0].Status)
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_ConsecutiveSameActionConsolidated(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")
	logs := []ActionLog{
		startLog(t, "2024-01-01T08:00:00Z"),
		startLog(t, "2024-01-01T09:00:00Z"),
		startLog(t, "2024-01-01T10:00:00Z"),
	}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 2)
	assert.Equal(t, PartNotWorking, segs[0].Status)
	assert.Equal(t, PartWorking, segs[1].Status)
	assert.True(t, segs[1].Start.Equal(ts(t, "2024-01-01T08:00:00Z")))
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_FutureWindowEndClipsToNow(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T12:00:00Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")
	logs := []ActionLog{startLog(t, "2024-01-01T08:00:00Z")}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 3)
	assert.Equal(t, PartWorking, segs[1].Status)
	assert.True(t, segs[1].End.Equal(now), "the working state must extend only to now")
	assert.Equal(t, PartNoData, segs[2].Status)
	assert.True(t, segs[2].End.Equal(w.End))
	assertPartTiling(t, segs, w)
}

func TestBuildPartSegments_DegenerateWindows(t *testing.T) {
	boundary := ts(t, "2023-12-01T00:00:00Z")

	t.Run("end before start", func(t *testing.T) {
		w := Window{Start: ts(t, "2024-01-02T00:00:00Z"), End: ts(t, "2024-01-01T00:00:00Z")}
		assert.Nil(t, BuildPartSegments(nil, w, boundary, ts(t, "2024-01-03T00:00:00Z")))
	})

	t.Run("window entirely in the future", func(t *testing.T) {
		w := Window{Start: ts(t, "2024-02-01T00:00:00Z"), End: ts(t, "2024-02-01T23:59:59Z")}
		segs := BuildPartSegments(nil, w, boundary, ts(t, "2024-01-01T00:00:00Z"))
		require.Len(t, segs, 1)
		assert.Equal(t, PartNoData, segs[0].Status)
		assertPartTiling(t, segs, w)
	})
}

func TestSummarizePart(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T12:00:00Z")
	boundary := ts(t, "2024-01-01T06:00:00Z")
	logs := []ActionLog{
		startLog(t, "2024-01-01T08:00:00Z"),
		stopLog(t, "2024-01-01T10:00:00Z"),
	}

	segs := BuildPartSegments(logs, w, boundary, now)
	s := SummarizePart(segs)

	// NO DATA before the creation instant and past now is excluded.
	assert.Equal(t, float64(7200), s.WorkingSeconds)
	assert.Equal(t, float64(7200+7200), s.NotWorkingSeconds)
	assert.Equal(t, s.WorkingSeconds+s.NotWorkingSeconds, s.TotalSeconds)

	clock := s.Format()
	assert.Equal(t, "02:00:00", clock.Working)
	assert.Equal(t, "04:00:00", clock.NotWorking)
	assert.Equal(t, "06:00:00", clock.Total)
}

func TestBuildPartSegments_UnsortedLogs(t *testing.T) {
	w := Window{Start: ts(t, "2024-01-01T00:00:00Z"), End: ts(t, "2024-01-01T23:59:59Z")}
	now := ts(t, "2024-01-01T23:59:59Z")
	boundary := ts(t, "2023-12-01T00:00:00Z")
	logs := []ActionLog{
		stopLog(t, "2024-01-01T10:00:00Z"),
		startLog(t, "2024-01-01T08:00:00Z"),
	}

	segs := BuildPartSegments(logs, w, boundary, now)

	require.Len(t, segs, 3)
	assert.Equal(t, PartWorking, segs[1].Status)
	assert.Equal(t, float64(7200), segs[1].DurationSeconds)
	assertPartTiling(t, segs, w)
}
