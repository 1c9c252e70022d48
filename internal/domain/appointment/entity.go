package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SlotFor computes the appointment window for a procedure starting at start.
func SlotFor(catalog *schedule.Catalog, procedure string, start schedule.TimeOfDay) (schedule.Interval, error) {
	duration, ok := catalog.Duration(procedure)
	if !ok {
		return schedule.Interval{}, fmt.Errorf("%w: unknown procedure %q", httperr.ErrBusiness(httperr.CodeSlotUnavailable), procedure)
	}
	return schedule.NewInterval(start, start.Add(duration))
}

// EnsureOffered rejects a slot that is not among the currently offered candidates.
func EnsureOffered(slot schedule.Interval, offered []schedule.Interval) error {
	if !schedule.Contains(offered, slot) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}

// Reoffer returns the slots a rescheduled appointment may move to when its
// own interval on the same date is released back into free. Only the part of
// released not covered by blocked goes back.
func Reoffer(free []schedule.Interval, released schedule.Interval, blocked []schedule.Interval, duration, step time.Duration) []schedule.Interval {
	uncovered := schedule.Subtract(released, blocked)
	merged := schedule.Union(append(append([]schedule.Interval(nil), free...), uncovered...))
	return schedule.SliceSlots(merged, duration, step)
}

func New(clientID uint, procedure string, date time.Time, slot schedule.Interval, comment string) *models.Appointment {
	return &models.Appointment{
		ClientID:  clientID,
		Procedure: procedure,
		Date:      schedule.DateOf(date),
		StartTime: slot.Start,
		EndTime:   slot.End,
		Comment:   comment,
	}
}
