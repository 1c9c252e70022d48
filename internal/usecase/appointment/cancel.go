package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// CancelAppointment deletes the booking; there is no cancelled state.
type CancelAppointment struct {
	repo  domain.Repository
	cache Invalidator
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	cache Invalidator,
	audit *audit.Dispatcher,
) *CancelAppointment {
	if cache == nil {
		cache = noInvalidator{}
	}
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"client_id": ap.ClientID,
			"date":      schedule.DateKey(ap.Date),
			"start":     ap.StartTime.HHMM(),
		},
	})

	return ap, nil
}
