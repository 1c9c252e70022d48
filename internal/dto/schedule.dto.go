package dto

import (
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

type IntervalDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type WorkingHoursDTO struct {
	Date  string       `json:"date"`
	Open  bool         `json:"open"`
	Hours *IntervalDTO `json:"hours,omitempty"`
}

type BlockedRangeDTO struct {
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	WholeDay bool   `json:"whole_day"`
}


func NewInterval(iv schedule.Interval) IntervalDTO {
	return IntervalDTO{Start: iv.Start.HHMM(), End: iv.End.HHMM()}
}

func NewIntervals(ivs []schedule.Interval) []IntervalDTO {
	out := make([]IntervalDTO, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, NewInterval(iv))
	}
	return out
}

func NewBlockedRange(br schedule.BlockedRange) BlockedRangeDTO {
	return BlockedRangeDTO{
		ID:       br.ID,
		Date:     schedule.DateKey(br.Date),
		Start:    br.Interval.Start.String(),
		End:      br.Interval.End.String(),
		WholeDay: br.Interval.IsWholeDay(),
	}
}

func NewBlockedRanges(brs []schedule.BlockedRange) []BlockedRangeDTO {
	out := make([]BlockedRangeDTO, 0, len(brs))
	for _, br := range brs {
		out = append(out, NewBlockedRange(br))
	}
	return out
}

func DateKeys(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, schedule.DateKey(d))
	}
	return out
}

