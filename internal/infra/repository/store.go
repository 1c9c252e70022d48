package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

// store carries what every gorm repository needs: the handle (pool or tx),
// the per-call timeout and the business location for calendar dates.
type store struct {
	db      *gorm.DB
	timeout time.Duration
	loc     *time.Location
}

func newStore(db *gorm.DB, timeout time.Duration, loc *time.Location) store {
	if loc == nil {
		loc = time.Local
	}
	return store{db: db, timeout: timeout, loc: loc}
}

// bound caps a single store call so a stalled database surfaces as an error.
func (s store) bound(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout <= 0 {
		return s.db.WithContext(ctx), func() {}
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(cctx), cancel
}

func (s store) date(t time.Time) time.Time {
	return schedule.DateIn(t, s.loc)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func wrap(op string, err error) error {
	return httperr.Persistence(op, err)
}

// passThrough keeps taxonomy errors raised inside a transaction and wraps
// anything else (begin/commit failures) as a persistence error.
func passThrough(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.BusinessCode(err); ok || httperr.IsPersistence(err) {
		return err
	}
	return wrap("transaction", err)
}
