package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeeklySchedule(t *testing.T) {
	ws := DefaultWeeklySchedule()

	// 2026-10-18 is a Sunday
	sunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.True(t, ws.ClosedOn(sunday))

	hours, open := ws.Hours(sunday.AddDate(0, 0, 3)) // Wednesday
	require.True(t, open)
	assert.Equal(t, iv(9, 0, 16, 0), hours)

	hours, open = ws.Hours(sunday.AddDate(0, 0, 6)) // Saturday
	require.True(t, open)
	assert.Equal(t, iv(13, 30, 20, 30), hours)
}

func TestNewWeeklySchedule_RejectsInvalidHours(t *testing.T) {
	_, err := NewWeeklySchedule(map[time.Weekday]Interval{time.Monday: iv(16, 0, 9, 0)})
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTrimEdges(t *testing.T) {
	window := iv(9, 0, 16, 0)

	cases := []struct {
		name   string
		blocks []Interval
		want   Interval
		open   bool
	}{
		{"no blocks", nil, window, true},
		{"left edge", []Interval{iv(8, 0, 10, 0)}, iv(10, 0, 16, 0), true},
		{"left edge exact start", []Interval{iv(9, 0, 9, 30)}, iv(9, 30, 16, 0), true},
		{"right edge", []Interval{iv(15, 0, 17, 0)}, iv(9, 0, 15, 0), true},
		{"interior left alone", []Interval{iv(11, 0, 12, 0)}, window, true},
		{"both edges", []Interval{iv(15, 0, 16, 0), iv(9, 0, 10, 0)}, iv(10, 0, 15, 0), true},
		{"full cover", []Interval{iv(8, 0, 17, 0)}, Interval{}, false},
		{"whole day", []Interval{WholeDay}, Interval{}, false},
		{"edges meet", []Interval{iv(9, 0, 12, 0), iv(12, 0, 16, 0)}, Interval{}, false},
		{"outside window", []Interval{iv(6, 0, 8, 0), iv(17, 0, 18, 0)}, window, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, open := TrimEdges(window, tc.blocks)
			assert.Equal(t, tc.open, open)
			assert.Equal(t, tc.want, got)
		})
	}
}
