package schedule

import (
	"fmt"
	"time"
)

// DayRule is the recurring rule for one weekday.
type DayRule struct {
	Open  bool
	Hours Interval
}

// WeeklySchedule maps every weekday to its fixed opening window.
type WeeklySchedule struct {
	days [7]DayRule
}

func NewWeeklySchedule(rules map[time.Weekday]Interval) (WeeklySchedule, error) {
	var ws WeeklySchedule
	for wd, iv := range rules {
		if wd < time.Sunday || wd > time.Saturday {
			return WeeklySchedule{}, fmt.Errorf("invalid weekday %d", wd)
		}
		if !iv.Valid() {
			return WeeklySchedule{}, fmt.Errorf("%w: %s on %s", ErrInvalidInterval, iv, wd)
		}
		ws.days[wd] = DayRule{Open: true, Hours: iv}
	}
	return ws, nil
}

// DefaultWeeklySchedule: Mon/Wed/Fri 09:00-16:00, Tue/Thu/Sat 13:30-20:30,
// Sunday off.
func DefaultWeeklySchedule() WeeklySchedule {
	morning := Interval{Start: Clock(9, 0, 0), End: Clock(16, 0, 0)}
	evening := Interval{Start: Clock(13, 30, 0), End: Clock(20, 30, 0)}

	ws, _ := NewWeeklySchedule(map[time.Weekday]Interval{
		time.Monday:    morning,
		time.Wednesday: morning,
		time.Friday:    morning,
		time.Tuesday:   evening,
		time.Thursday:  evening,
		time.Saturday:  evening,
	})
	return ws
}

// Hours returns the base window for date's weekday, false on the weekly day off.
func (ws WeeklySchedule) Hours(date time.Time) (Interval, bool) {
	r := ws.days[date.Weekday()]
	return r.Hours, r.Open
}

func (ws WeeklySchedule) ClosedOn(date time.Time) bool {
	return !ws.days[date.Weekday()].Open
}

// TrimEdges narrows window by the blocks that cover its left or right edge.
// Blocks strictly inside the window are left for Subtract. The bool is false
// when the day ends up closed.
func TrimEdges(window Interval, blocks []Interval) (Interval, bool) {
	sorted := append([]Interval(nil), blocks...)
	SortByStart(sorted)

	w := window
	for _, b := range sorted {
		if b.Start >= b.End {
			continue
		}
		switch {
		case b.Start <= w.Start && b.End >= w.End:
			return Interval{}, false
		case b.Start <= w.Start && w.Start < b.End:
			w.Start = b.End
		case b.Start < w.End && w.End <= b.End:
			w.End = b.Start
		}
	}

	if w.Start >= w.End {
		return Interval{}, false
	}
	return w, true
}
