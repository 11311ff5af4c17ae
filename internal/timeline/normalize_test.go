package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUTC(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		in       string
		expected time.Time
	}{
		{
			name:     "RFC3339 with zone marker",
			in:       "2024-01-01T08:00:00Z",
			expected: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "UTC-naive ISO string is interpreted as UTC",
			in:       "2024-01-01T08:00:00",
			expected: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "database layout with space separator",
			in:       "2024-01-01 08:00:00.123456",
			expected: time.Date(2024, 1, 1, 8, 0, 0, 123456000, time.UTC),
		},
		{
			name:     "malformed value fails closed to fallback",
			in:       "not-a-timestamp",
			expected: fallback,
		},
		{
			name:     "empty value fails closed to fallback",
			in:       "",
			expected: fallback,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, ParseUTC(tc.in, fallback).Equal(tc.expected))
		})
	}
}

func TestNormalize_SortsAndDropsAfterWindowEnd(t *testing.T) {
	w := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
	}
	now := w.End
	raw := []RawEvent{
		{Timestamp: "2024-01-01T10:00:00", Code: 0},
		{Timestamp: "2024-01-01T08:00:00", Code: 2},
		{Timestamp: "2024-01-02T01:00:00", Code: 1}, // strictly after window end
	}

	events := Normalize(raw, w, DefaultClassifier, now)

	require.Len(t, events, 2)
	assert.Equal(t, StatusRunning, events[0].Status)
	assert.Equal(t, StatusStopped, events[1].Status)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
}

func TestNormalize_StableForEqualTimestamps(t *testing.T) {
	w := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
	}
	raw := []RawEvent{
		{Timestamp: "2024-01-01T08:00:00", Code: 2},
		{Timestamp: "2024-01-01T08:00:00", Code: 1},
	}

	events := Normalize(raw, w, DefaultClassifier, w.End)

	require.Len(t, events, 2)
	assert.Equal(t, StatusRunning, events[0].Status)
	assert.Equal(t, StatusStandby, events[1].Status)
}

func TestNormalize_UnknownCodeGetsUnknownStatus(t *testing.T) {
	w := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
	}
	raw := []RawEvent{{Timestamp: "2024-01-01T08:00:00", Code: 7}}

	events := Normalize(raw, w, DefaultClassifier, w.End)

	require.Len(t, events, 1)
	assert.Equal(t, StatusUnknown, events[0].Status)
}

func TestNewClassifier(t *testing.T) {
	classify := NewClassifier([]float64{2, 3}, []float64{1}, []float64{0})

	assert.Equal(t, StatusRunning, classify(3))
	assert.Equal(t, StatusStandby, classify(1))
	assert.Equal(t, StatusStopped, classify(0))
	assert.Equal(t, StatusUnknown, classify(9))
}
