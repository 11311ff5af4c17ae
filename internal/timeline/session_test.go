package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestActiveSession(t *testing.T) {
	logs := []ActionLog{
		{Timestamp: at(8, 0), Action: ActionStart, Operator: "Budi", Part: "Bracket-A"},
		{Timestamp: at(9, 0), Action: ActionStop, Operator: "Budi", Part: "Bracket-A"},
		{Timestamp: at(11, 0), Action: ActionStart, Operator: "Sari", Part: "Housing-B"},
	}

	testCases := []struct {
		name     string
		at       time.Time
		expected Session
		active   bool
	}{
		{
			name:     "inside first session",
			at:       at(8, 30),
			expected: Session{Operator: "Budi", Part: "Bracket-A"},
			active:   true,
		},
		{
			name:     "after stop, before next start",
			at:       at(9, 30),
			expected: NoSession(),
			active:   false,
		},
		{
			name:     "stop exactly at query instant ends the session",
			at:       at(9, 0),
			expected: NoSession(),
			active:   false,
		},
		{
			name:     "start exactly at query instant begins the session",
			at:       at(11, 0),
			expected: Session{Operator: "Sari", Part: "Housing-B"},
			active:   true,
		},
		{
			name:     "open-ended second session",
			at:       at(15, 0),
			expected: Session{Operator: "Sari", Part: "Housing-B"},
			active:   true,
		},
		{
			name:     "before any log",
			at:       at(6, 0),
			expected: NoSession(),
			active:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := ActiveSession(logs, tc.at)
			assert.Equal(t, tc.active, ok)
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestActiveSession_EmptyLogs(t *testing.T) {
	s, ok := ActiveSession(nil, at(12, 0))
	assert.False(t, ok)
	assert.Equal(t, NoSession(), s)
}

func TestActiveSession_Deterministic(t *testing.T) {
	logs := []ActionLog{
		{Timestamp: at(7, 0), Action: ActionStart, Operator: "Budi", Part: "Bracket-A"},
		{Timestamp: at(8, 0), Action: ActionStop},
		{Timestamp: at(8, 15), Action: ActionStart, Operator: "Sari", Part: "Housing-B"},
	}

	first, ok1 := ActiveSession(logs, at(10, 0))
	second, ok2 := ActiveSession(logs, at(10, 0))
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestActiveSession_UnorderedLogs(t *testing.T) {
	// The lookup must not depend on input ordering.
	logs := []ActionLog{
		{Timestamp: at(11, 0), Action: ActionStart, Operator: "Sari", Part: "Housing-B"},
		{Timestamp: at(9, 0), Action: ActionStop},
		{Timestamp: at(8, 0), Action: ActionStart, Operator: "Budi", Part: "Bracket-A"},
	}

	s, ok := ActiveSession(logs, at(12, 0))
	assert.True(t, ok)
	assert.Equal(t, "Sari", s.Operator)
}
