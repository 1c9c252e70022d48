package schedule

import (
	"fmt"
	"time"
)

// Settings holds the static scanning knobs.
type Settings struct {
	Step            time.Duration
	DaysLookahead   int
	MonthsLookahead int
}

func DefaultSettings() Settings {
	return Settings{
		Step:            15 * time.Minute,
		DaysLookahead:   30,
		MonthsLookahead: 6,
	}
}

func (s Settings) Validate() error {
	if s.Step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	if s.DaysLookahead < 0 {
		return fmt.Errorf("days lookahead must not be negative")
	}
	if s.MonthsLookahead < 1 {
		return fmt.Errorf("months lookahead must be at least 1")
	}
	return nil
}

type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) First(loc *time.Location) time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
}

func (ym YearMonth) Last(loc *time.Location) time.Time {
	return ym.First(loc).AddDate(0, 1, -1)
}

func (ym YearMonth) index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ScanRange returns the inclusive [from, to] dates to scan. With a target
// month it is [max(tomorrow, first), last]; otherwise [today, today+days].
// ok is false when the range is empty.
func ScanRange(today time.Time, month *YearMonth, daysLookahead int) (from, to time.Time, ok bool) {
	today = DateOf(today)

	if month == nil {
		return today, today.AddDate(0, 0, daysLookahead), true
	}

	first := month.First(today.Location())
	last := month.Last(today.Location())

	from = today.AddDate(0, 0, 1)
	if first.After(from) {
		from = first
	}
	if from.After(last) {
		return time.Time{}, time.Time{}, false
	}
	return from, last, true
}

// AvailableMonths lists the current month and the following months up to
// count months in total.
func AvailableMonths(today time.Time, count int) []YearMonth {
	cur := MonthOf(today)
	out := make([]YearMonth, 0, count)
	for i := 0; i < count; i++ {
		idx := cur.index() + i
		out = append(out, YearMonth{Year: idx / 12, Month: time.Month(idx%12 + 1)})
	}
	return out
}

// WithinMonths reports whether ym is one of the count months starting at today's.
func WithinMonths(today time.Time, ym YearMonth, count int) bool {
	d := ym.index() - MonthOf(today).index()
	return d >= 0 && d < count
}
