package schedule

import (
	"sort"
	"time"
)

// SliceSlots cuts every free interval into duration-long candidates whose
// starts advance by step. A slot is emitted only while start+duration fits.
// Output is deduplicated by start and sorted.
func SliceSlots(free []Interval, duration, step time.Duration) []Interval {
	if duration <= 0 || step <= 0 {
		return []Interval{}
	}

	seen := make(map[TimeOfDay]struct{})
	slots := []Interval{}

	for _, f := range free {
		if f.Start >= f.End {
			continue
		}
		for t := f.Start; t.Add(duration) <= f.End; t = t.Add(step) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			slots = append(slots, Interval{Start: t, End: t.Add(duration)})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots
}

// Contains reports whether want is one of slots.
func Contains(slots []Interval, want Interval) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}
