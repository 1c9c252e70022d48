package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
)

// ListClientAppointments returns every booking of one client, oldest first.
type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(repo domain.Repository) *ListClientAppointments {
	return &ListClientAppointments{repo: repo}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentList(appointments), nil
}

type ListAllAppointments struct {
	repo domain.Repository
}

func NewListAllAppointments(repo domain.Repository) *ListAllAppointments {
	return &ListAllAppointments{repo: repo}
}

func (uc *ListAllAppointments) Execute(ctx context.Context) ([]dto.AppointmentListDTO, error) {
	appointments, err := uc.repo.ListAllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentList(appointments), nil
}
