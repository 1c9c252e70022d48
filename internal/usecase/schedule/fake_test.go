package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

// memRepo is an in-memory domain.Repository. Transactions snapshot the
// blocks and roll back when fn fails.
type memRepo struct {
	nextID uint
	blocks map[uint]domain.BlockedRange
	booked map[string][]domain.Interval
	failOp string
	listed int
	locked []string
	onList func()
}

func newMemRepo() *memRepo {
	return &memRepo{
		blocks: map[uint]domain.BlockedRange{},
		booked: map[string][]domain.Interval{},
	}
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) book(date time.Time, iv domain.Interval) {
	k := domain.DateKey(date)
	r.booked[k] = append(r.booked[k], iv)
}

// fail makes the next call of op return a persistence error.
func (r *memRepo) fail(op string) error {
	if r.failOp == op {
		r.failOp = ""
		return httperr.Persistence(op, errStoreDown)
	}
	return nil
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	snapshot := make(map[uint]domain.BlockedRange, len(r.blocks))
	for k, v := range r.blocks {
		snapshot[k] = v
	}
	if err := fn(r); err != nil {
		r.blocks = snapshot
		return err
	}
	return nil
}

func (r *memRepo) ListBlockedRanges(ctx context.Context, date time.Time) ([]domain.BlockedRange, error) {
	if err := r.fail("ListBlockedRanges"); err != nil {
		return nil, err
	}
	r.listed++
	if r.onList != nil {
		r.onList()
	}
	out := []domain.BlockedRange{}
	for _, br := range r.blocks {
		if domain.DateKey(br.Date) == domain.DateKey(date) {
			out = append(out, br)
		}
	}
	domain.SortBlocks(out)
	return out, nil
}

func (r *memRepo) LockBlockedRanges(ctx context.Context, date time.Time) ([]domain.BlockedRange, error) {
	if err := r.fail("LockBlockedRanges"); err != nil {
		return nil, err
	}
	r.locked = append(r.locked, domain.DateKey(date))
	return r.ListBlockedRanges(ctx, date)
}

func (r *memRepo) InsertBlockedRange(ctx context.Context, date time.Time, iv domain.Interval) (domain.BlockedRange, error) {
	if err := r.fail("InsertBlockedRange"); err != nil {
		return domain.BlockedRange{}, err
	}
	r.nextID++
	br := domain.BlockedRange{ID: r.nextID, Date: date, Interval: iv}
	r.blocks[br.ID] = br
	return br, nil
}

func (r *memRepo) DeleteBlockedRanges(ctx context.Context, ids []uint) error {
	if err := r.fail("DeleteBlockedRanges"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(r.blocks, id)
	}
	return nil
}

func (r *memRepo) DeleteBlockedRangesOn(ctx context.Context, date time.Time) error {
	if err := r.fail("DeleteBlockedRangesOn"); err != nil {
		return err
	}
	for id, br := range r.blocks {
		if domain.DateKey(br.Date) == domain.DateKey(date) {
			delete(r.blocks, id)
		}
	}
	return nil
}

func (r *memRepo) DeleteBlockedRange(ctx context.Context, id uint) (bool, error) {
	if err := r.fail("DeleteBlockedRange"); err != nil {
		return false, err
	}
	_, ok := r.blocks[id]
	delete(r.blocks, id)
	return ok, nil
}

func (r *memRepo) ListOccupiedIntervals(ctx context.Context, date time.Time) ([]domain.Interval, error) {
	if err := r.fail("ListOccupiedIntervals"); err != nil {
		return nil, err
	}
	return append([]domain.Interval(nil), r.booked[domain.DateKey(date)]...), nil
}

// memCache keys entries by generation like the redis cache does.
type memCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[string][]string
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]string{}}
}

func (c *memCache) Dates(_ context.Context, key string) ([]string, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[fmt.Sprintf("%d|%s", c.gen, key)]
	return d, c.gen, ok
}

func (c *memCache) StoreDates(_ context.Context, key string, gen int64, dates []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fmt.Sprintf("%d|%s", gen, key)] = dates
}

func (c *memCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
}

var errStoreDown = errors.New("connection refused")

func hm(h, m int) domain.TimeOfDay { return domain.Clock(h, m, 0) }

func iv(sh, sm, eh, em int) domain.Interval {
	return domain.Interval{Start: hm(sh, sm), End: hm(eh, em)}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedNow pins the clock to Friday 2026-10-16 10:00.
func fixedNow() time.Time {
	return time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
}
