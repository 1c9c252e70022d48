package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	store
}

func NewScheduleGormRepository(db *gorm.DB, timeout time.Duration, loc *time.Location) *ScheduleGormRepository {
	return &ScheduleGormRepository{store: newStore(db, timeout, loc)}
}

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(tx schedule.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{store: newStore(tx, r.timeout, r.loc)})
	})
	return passThrough(err)
}

// --------------------------------------------------
// Blocked ranges
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBlockedRanges(
	ctx context.Context,
	date time.Time,
) ([]schedule.BlockedRange, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var rows []models.BlockedSlot
	if err := db.
		Where("date = ?", schedule.DateKey(date)).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, wrap("list blocked ranges", err)
	}

	out := make([]schedule.BlockedRange, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toBlockedRange(row))
	}
	return out, nil
}

func (r *ScheduleGormRepository) LockBlockedRanges(
	ctx context.Context,
	date time.Time,
) ([]schedule.BlockedRange, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	// row locks alone miss a date with no rows yet
	if err := db.
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "blocked_slots:"+schedule.DateKey(date)).
		Error; err != nil {
		return nil, wrap("lock blocked day", err)
	}

	var rows []models.BlockedSlot
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ?", schedule.DateKey(date)).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, wrap("lock blocked ranges", err)
	}

	out := make([]schedule.BlockedRange, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toBlockedRange(row))
	}
	return out, nil
}

func (r *ScheduleGormRepository) InsertBlockedRange(
	ctx context.Context,
	date time.Time,
	iv schedule.Interval,
) (schedule.BlockedRange, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	row := models.BlockedSlot{
		Date:      r.date(date),
		StartTime: iv.Start,
		EndTime:   iv.End,
	}
	if err := db.Create(&row).Error; err != nil {
		return schedule.BlockedRange{}, wrap("insert blocked range", err)
	}
	return r.toBlockedRange(row), nil
}

func (r *ScheduleGormRepository) DeleteBlockedRanges(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	db, cancel := r.bound(ctx)
	defer cancel()

	if err := db.Delete(&models.BlockedSlot{}, ids).Error; err != nil {
		return wrap("delete blocked ranges", err)
	}
	return nil
}

func (r *ScheduleGormRepository) DeleteBlockedRangesOn(ctx context.Context, date time.Time) error {
	db, cancel := r.bound(ctx)
	defer cancel()

	if err := db.
		Where("date = ?", schedule.DateKey(date)).
		Delete(&models.BlockedSlot{}).Error; err != nil {
		return wrap("clear blocked day", err)
	}
	return nil
}

func (r *ScheduleGormRepository) DeleteBlockedRange(ctx context.Context, id uint) (bool, error) {
	db, cancel := r.bound(ctx)
	defer cancel()

	res := db.Delete(&models.BlockedSlot{}, id)
	if res.Error != nil {
		return false, wrap("delete blocked range", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListOccupiedIntervals(
	ctx context.Context,
	date time.Time,
) ([]schedule.Interval, error) {

	db, cancel := r.bound(ctx)
	defer cancel()

	var apps []models.Appointment
	if err := db.
		Select("start_time", "end_time").
		Where("date = ?", schedule.DateKey(date)).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, wrap("list occupied intervals", err)
	}

	out := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, ap.Interval())
	}
	return out, nil
}

func (r *ScheduleGormRepository) toBlockedRange(row models.BlockedSlot) schedule.BlockedRange {
	return schedule.BlockedRange{
		ID:       row.ID,
		Date:     r.date(row.Date),
		Interval: schedule.Interval{Start: row.StartTime, End: row.EndTime},
	}
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
