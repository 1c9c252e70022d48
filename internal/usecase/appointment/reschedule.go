package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	Date          time.Time
	Start         schedule.TimeOfDay
}

// RescheduleAppointment moves a booking by deleting it and creating a new one
// with the same client, procedure and comment. Both writes share one
// transaction so a failure keeps the original.
type RescheduleAppointment struct {
	repo  domain.Repository
	avail Availability
	cache Invalidator
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewRescheduleAppointment(
	repo domain.Repository,
	avail Availability,
	cache Invalidator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *RescheduleAppointment {
	if cache == nil {
		cache = noInvalidator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RescheduleAppointment{
		repo:  repo,
		avail: avail,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	date := schedule.DateOf(in.Date)
	if date.Before(uc.avail.Today()) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	old, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	rules := uc.avail.Rules()
	slot, err := domain.SlotFor(rules.Catalog, old.Procedure, in.Start)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Offered slots, counting the booking's own time as free
	// --------------------------------------------------
	free, err := uc.avail.CandidateSlots(ctx, date, "")
	if err != nil {
		return nil, err
	}

	var offered []schedule.Interval
	if schedule.DateKey(old.Date) == schedule.DateKey(date) {
		blocks, err := uc.avail.BlockedRanges(ctx, date)
		if err != nil {
			return nil, err
		}
		offered = domain.Reoffer(free, old.Interval(), schedule.Intervals(blocks), slot.Duration(), rules.Settings.Step)
	} else {
		offered = schedule.SliceSlots(free, slot.Duration(), rules.Settings.Step)
	}
	if err := domain.EnsureOffered(slot, offered); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Delete + create
	// --------------------------------------------------
	moved := domain.New(old.ClientID, old.Procedure, date, slot, old.Comment)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.DeleteAppointment(ctx, old.ID); err != nil {
			return err
		}
		if err := tx.AssertNoTimeConflict(ctx, date, slot); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, moved)
	})
	if err != nil {
		return nil, err
	}
	moved.Client = old.Client

	uc.log.Debug("appointment rescheduled",
		zap.Uint("from_id", old.ID),
		zap.Uint("to_id", moved.ID),
		zap.String("date", schedule.DateKey(date)),
		zap.Stringer("slot", slot),
	)

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionAppointmentMoved,
		Entity:   "appointment",
		EntityID: &moved.ID,
		Metadata: map[string]any{
			"previous_id":    old.ID,
			"previous_date":  schedule.DateKey(old.Date),
			"previous_start": old.StartTime.HHMM(),
			"date":           schedule.DateKey(date),
			"start":          slot.Start.HHMM(),
		},
	})

	return moved, nil
}
