package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetClientByChatID(
		ctx context.Context,
		chatID int64,
	) (*models.Client, error)

	FindClientsByTelephone(
		ctx context.Context,
		telephone string,
	) ([]models.Client, error)

	// UpsertClientByChatID creates the client or refreshes its contact data.
	UpsertClientByChatID(
		ctx context.Context,
		client *models.Client,
	) error

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	ListClients(
		ctx context.Context,
		query string,
	) ([]models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		date time.Time,
		slot schedule.Interval,
	) error

	// -------- Appointment (read / delete) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsByClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	ListAllAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)
}
