package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	Procedure string
	Date      time.Time
	Start     schedule.TimeOfDay
	Comment   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	avail Availability
	cache Invalidator
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	avail Availability,
	cache Invalidator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateAppointment {
	if cache == nil {
		cache = noInvalidator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateAppointment{
		repo:  repo,
		avail: avail,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date := schedule.DateOf(in.Date)
	procedure := strings.TrimSpace(in.Procedure)

	// --------------------------------------------------
	// Slot from the catalog
	// --------------------------------------------------
	slot, err := domain.SlotFor(uc.avail.Rules().Catalog, procedure, in.Start)
	if err != nil {
		return nil, err
	}

	if date.Before(uc.avail.Today()) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	// --------------------------------------------------
	// Client
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Re-check against what is offered right now
	// --------------------------------------------------
	offered, err := uc.avail.CandidateSlots(ctx, date, procedure)
	if err != nil {
		return nil, err
	}
	if err := domain.EnsureOffered(slot, offered); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflict check + insert
	// --------------------------------------------------
	ap := domain.New(client.ID, procedure, date, slot, strings.TrimSpace(in.Comment))

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.AssertNoTimeConflict(ctx, date, slot); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			uc.log.Info("slot taken concurrently",
				zap.String("date", schedule.DateKey(date)),
				zap.Stringer("slot", slot),
			)
			uc.audit.Dispatch(ctx, audit.Event{
				Action: audit.ActionAppointmentConflict,
				Entity: "appointment",
				Metadata: map[string]any{
					"client_id": client.ID,
					"date":      schedule.DateKey(date),
					"start":     slot.Start.HHMM(),
				},
			})
		}
		return nil, err
	}
	ap.Client = *client

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"client_id": client.ID,
			"procedure": procedure,
			"date":      schedule.DateKey(date),
			"start":     slot.Start.HHMM(),
		},
	})

	return ap, nil
}
