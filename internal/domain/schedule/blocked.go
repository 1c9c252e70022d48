package schedule

import (
	"sort"
	"time"
)

// BlockedRange is an operator-created exclusion stored for one date.
type BlockedRange struct {
	ID       uint      `json:"id"`
	Date     time.Time `json:"date"`
	Interval Interval  `json:"interval"`
}

// Coalesce folds candidate into every existing range that overlaps or touches
// it, repeating until the union stops growing. It returns the consolidated
// interval and the ids of the rows it supersedes.
func Coalesce(existing []BlockedRange, candidate Interval) (Interval, []uint) {
	union := candidate
	absorbed := make([]bool, len(existing))

	for grown := true; grown; {
		grown = false
		for i, br := range existing {
			if absorbed[i] || !Touches(union, br.Interval) {
				continue
			}
			merged, err := Merge(union, br.Interval)
			if err != nil {
				continue
			}
			absorbed[i] = true
			if merged != union {
				union = merged
				grown = true
			}
		}
	}

	var ids []uint
	for i, br := range existing {
		if absorbed[i] {
			ids = append(ids, br.ID)
		}
	}

	return union, ids
}

// HasWholeDay reports whether ranges contain the whole-day marker.
func HasWholeDay(ranges []BlockedRange) bool {
	for _, br := range ranges {
		if br.Interval.IsWholeDay() {
			return true
		}
	}
	return false
}

func Intervals(ranges []BlockedRange) []Interval {
	out := make([]Interval, 0, len(ranges))
	for _, br := range ranges {
		out = append(out, br.Interval)
	}
	return out
}

func SortBlocks(ranges []BlockedRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Interval.Start < ranges[j].Interval.Start
	})
}
