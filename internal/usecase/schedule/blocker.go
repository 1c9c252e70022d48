package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

// Blocker owns operator exclusions. Every mutation is one store transaction.
type Blocker struct {
	repo  domain.Repository
	cache DatesCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewBlocker(
	repo domain.Repository,
	cache DatesCache,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Blocker {
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Blocker{repo: repo, cache: cache, audit: audit, log: log}
}

// BlockWholeDay replaces every block on date with the whole-day marker.
// Blocking an already closed day succeeds.
func (b *Blocker) BlockWholeDay(ctx context.Context, date time.Time) (domain.BlockedRange, error) {
	date = domain.DateOf(date)

	var created domain.BlockedRange
	err := b.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockBlockedRanges(ctx, date); err != nil {
			return err
		}
		if err := tx.DeleteBlockedRangesOn(ctx, date); err != nil {
			return err
		}
		br, err := tx.InsertBlockedRange(ctx, date, domain.WholeDay)
		if err != nil {
			return err
		}
		created = br
		return nil
	})
	if err != nil {
		return domain.BlockedRange{}, err
	}

	b.cache.Invalidate(ctx)
	b.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionDayBlocked,
		Entity:   "blocked_slot",
		EntityID: &created.ID,
		Metadata: map[string]any{"date": domain.DateKey(date)},
	})

	return created, nil
}

// BlockRange stores iv merged with every block it overlaps or touches. The
// superseded rows are deleted in the same transaction.
func (b *Blocker) BlockRange(ctx context.Context, date time.Time, iv domain.Interval) (domain.BlockedRange, error) {
	if !iv.Valid() {
		return domain.BlockedRange{}, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, iv)
	}
	date = domain.DateOf(date)

	var (
		created    domain.BlockedRange
		superseded []uint
	)
	err := b.repo.Transaction(ctx, func(tx domain.Repository) error {
		existing, err := tx.LockBlockedRanges(ctx, date)
		if err != nil {
			return err
		}

		union, ids := domain.Coalesce(existing, iv)
		if len(ids) > 0 {
			if err := tx.DeleteBlockedRanges(ctx, ids); err != nil {
				return err
			}
		}

		br, err := tx.InsertBlockedRange(ctx, date, union)
		if err != nil {
			return err
		}
		created, superseded = br, ids
		return nil
	})
	if err != nil {
		return domain.BlockedRange{}, err
	}

	if len(superseded) > 0 {
		b.log.Debug("blocked ranges merged",
			zap.String("date", domain.DateKey(date)),
			zap.Stringer("requested", iv),
			zap.Stringer("stored", created.Interval),
			zap.Uints("superseded", superseded),
		)
	}

	b.cache.Invalidate(ctx)
	b.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionRangeBlocked,
		Entity:   "blocked_slot",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"date":       domain.DateKey(date),
			"start":      created.Interval.Start.String(),
			"end":        created.Interval.End.String(),
			"superseded": superseded,
		},
	})

	return created, nil
}

// Unblock deletes one block. A missing id is logged and ignored.
func (b *Blocker) Unblock(ctx context.Context, id uint) error {
	found, err := b.repo.DeleteBlockedRange(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		b.log.Warn("unblock: no blocked range with this id", zap.Uint("id", id))
		return nil
	}

	b.cache.Invalidate(ctx)
	b.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionRangeUnblocked,
		Entity:   "blocked_slot",
		EntityID: &id,
	})
	return nil
}

func (b *Blocker) IsWholeDayBlocked(ctx context.Context, date time.Time) (bool, error) {
	ranges, err := b.repo.ListBlockedRanges(ctx, domain.DateOf(date))
	if err != nil {
		return false, err
	}
	return domain.HasWholeDay(ranges), nil
}

// BlockedRanges lists the blocks of date sorted by start, ids included.
func (b *Blocker) BlockedRanges(ctx context.Context, date time.Time) ([]domain.BlockedRange, error) {
	ranges, err := b.repo.ListBlockedRanges(ctx, domain.DateOf(date))
	if err != nil {
		return nil, err
	}
	domain.SortBlocks(ranges)
	return ranges, nil
}
