package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open [Start, End) window inside a single day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// WholeDay is how a fully blocked day is stored.
var WholeDay = Interval{Start: Midnight, End: EndOfDay}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}
	return iv, nil
}

func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (iv Interval) Valid() bool {
	return iv.Start.Valid() && iv.End >= Midnight && iv.End <= dayLength && iv.Start < iv.End
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) IsWholeDay() bool {
	return iv == WholeDay
}

func (iv Interval) String() string {
	return iv.Start.HHMM() + "-" + iv.End.HHMM()
}

// Overlaps reports whether a and b share time. Touching endpoints do not count.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Touches is the inclusive variant of Overlaps: back-to-back intervals touch.
func Touches(a, b Interval) bool {
	return a.Start <= b.End && b.Start <= a.End
}

// Merge returns the union of two touching intervals.
func Merge(a, b Interval) (Interval, error) {
	if !Touches(a, b) {
		return Interval{}, fmt.Errorf("%w: %s and %s are disjoint", ErrInvalidInterval, a, b)
	}
	return Interval{Start: min(a.Start, b.Start), End: max(a.End, b.End)}, nil
}

// SortByStart orders intervals in place by start, then end.
func SortByStart(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}

// Subtract returns the maximal sub-intervals of window not covered by any of
// occupied. occupied may be unsorted, overlapping or degenerate; empty or
// inverted entries are ignored. The result is sorted, disjoint and clipped to
// window.
func Subtract(window Interval, occupied []Interval) []Interval {
	if !window.Valid() {
		return nil
	}

	busy := make([]Interval, 0, len(occupied))
	for _, o := range occupied {
		if o.Start < o.End {
			busy = append(busy, o)
		}
	}
	SortByStart(busy)

	free := []Interval{}
	cursor := window.Start

	for _, o := range busy {
		if o.Start >= window.End {
			break
		}
		if o.Start > cursor {
			free = append(free, Interval{Start: cursor, End: o.Start})
		}
		cursor = max(cursor, o.End)
		if cursor >= window.End {
			return free
		}
	}

	if cursor < window.End {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	return free
}

// Union merges overlapping or touching intervals into a sorted, disjoint set.
func Union(ivs []Interval) []Interval {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Valid() {
			sorted = append(sorted, iv)
		}
	}
	SortByStart(sorted)

	out := []Interval{}
	for _, iv := range sorted {
		if n := len(out); n > 0 && Touches(out[n-1], iv) {
			out[n-1].End = max(out[n-1].End, iv.End)
			continue
		}
		out = append(out, iv)
	}
	return out
}
