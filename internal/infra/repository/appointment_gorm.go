package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	store
}

func NewAppointmentGormRepository(db *gorm.DB, timeout time.Duration, loc *time.Location) *AppointmentGormRepository {
	return &AppointmentGormRepository{store: newStore(db, timeout, loc)}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{store: newStore(tx, r.timeout, r.loc)})
	})
	return passThrough(err)
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
		}
		return nil, wrap("get client", err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetClientByChatID(
	ctx context.Context,
	chatID int64,
) (*models.Client, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var client models.Client
	if err := db.Where("chat_id = ?", chatID).First(&client).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
		}
		return nil, wrap("get client by chat id", err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) FindClientsByTelephone(
	ctx context.Context,
	telephone string,
) ([]models.Client, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var clients []models.Client
	if err := db.
		Where("telephone = ?", telephone).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, wrap("find clients by telephone", err)
	}
	return clients, nil
}

func (r *AppointmentGormRepository) UpsertClientByChatID(
	ctx context.Context,
	client *models.Client,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"telephone", "first_name", "username", "name", "updated_at"}),
	}).Create(client).Error; err != nil {
		return wrap("upsert client", err)
	}

	// ON CONFLICT does not always hand back the existing id
	if client.ID == 0 && client.ChatID != nil {
		if err := db.Where("chat_id = ?", *client.ChatID).First(client).Error; err != nil {
			return wrap("reload client", err)
		}
	}
	return nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	if err := db.Create(client).Error; err != nil {
		return wrap("create client", err)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateClient(
	ctx context.Context,
	client *models.Client,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	if err := db.Save(client).Error; err != nil {
		return wrap("update client", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListClients(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	q := db.Model(&models.Client{})

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR telephone LIKE ? OR LOWER(username) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, wrap("list clients", err)
	}
	return clients, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment relies on the unique (date, start_time) index: a second
// writer for the same slot gets slot_conflict.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	ap.Date = r.date(ap.Date)
	if err := db.Omit("Client").Create(ap).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
		return wrap("create appointment", err)
	}
	return nil
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	date time.Time,
	slot schedule.Interval,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	var conflicts []models.Appointment
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where(
			"date = ? AND start_time < ? AND end_time > ?",
			schedule.DateKey(date), slot.End, slot.Start,
		).
		Find(&conflicts).Error; err != nil {
		return wrap("check time conflict", err)
	}

	if len(conflicts) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var ap models.Appointment
	if err := db.Preload("Client").First(&ap, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, wrap("get appointment", err)
	}
	r.normalize(&ap)
	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	db, cancel := r.bound(ctx)
	defer cancel()

	res := db.Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return wrap("delete appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// ListAppointmentsForPeriod returns appointments with from <= date < to.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	return r.list(ctx, "list appointments for period", func(q *gorm.DB) *gorm.DB {
		return q.Where("date >= ? AND date < ?", schedule.DateKey(from), schedule.DateKey(to))
	})
}

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	return r.list(ctx, "list client appointments", func(q *gorm.DB) *gorm.DB {
		return q.Where("client_id = ?", clientID)
	})
}

func (r *AppointmentGormRepository) ListAllAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	return r.list(ctx, "list appointments", func(q *gorm.DB) *gorm.DB { return q })
}

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	op string,
	scope func(*gorm.DB) *gorm.DB,
) ([]models.Appointment, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var apps []models.Appointment
	if err := scope(db.Preload("Client")).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, wrap(op, err)
	}

	for i := range apps {
		r.normalize(&apps[i])
	}
	return apps, nil
}

func (r *AppointmentGormRepository) normalize(ap *models.Appointment) {
	ap.Date = r.date(ap.Date)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
