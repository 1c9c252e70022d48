package schedule

import (
	"context"
	"time"
)

// Repository is the persistence collaborator of the scheduling core.
// Implementations wrap store failures in httperr.PersistenceError.
type Repository interface {
	// Transaction runs fn against a repository bound to one store transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Blocked ranges --------
	ListBlockedRanges(ctx context.Context, date time.Time) ([]BlockedRange, error)
	// LockBlockedRanges is ListBlockedRanges inside a transaction that also
	// holds the date until commit, so writers on one date run in turn.
	LockBlockedRanges(ctx context.Context, date time.Time) ([]BlockedRange, error)
	InsertBlockedRange(ctx context.Context, date time.Time, iv Interval) (BlockedRange, error)
	DeleteBlockedRanges(ctx context.Context, ids []uint) error
	DeleteBlockedRangesOn(ctx context.Context, date time.Time) error
	// DeleteBlockedRange reports false when no row has that id.
	DeleteBlockedRange(ctx context.Context, id uint) (bool, error)

	// -------- Appointments --------
	ListOccupiedIntervals(ctx context.Context, date time.Time) ([]Interval, error)
}
