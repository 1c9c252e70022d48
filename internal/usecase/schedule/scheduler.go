package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

// DatesCache memoizes lookahead scans between mutations.
type DatesCache interface {
	Dates(ctx context.Context, key string) (dates []string, gen int64, hit bool)
	StoreDates(ctx context.Context, key string, gen int64, dates []string)
	Invalidate(ctx context.Context)
}

// Scheduler answers the read-side availability questions.
type Scheduler struct {
	repo  domain.Repository
	rules *domain.Rules
	now   func() time.Time
	cache DatesCache
	log   *zap.Logger
}

func NewScheduler(
	repo domain.Repository,
	rules *domain.Rules,
	now func() time.Time,
	cache DatesCache,
	log *zap.Logger,
) *Scheduler {
	if rules == nil {
		rules = domain.DefaultRules()
	}
	if now == nil {
		now = time.Now
	}
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{repo: repo, rules: rules, now: now, cache: cache, log: log}
}

func (s *Scheduler) Rules() *domain.Rules {
	return s.rules
}

func (s *Scheduler) Procedures() []domain.Procedure {
	return s.rules.Catalog.All()
}

// Today is the current business date.
func (s *Scheduler) Today() time.Time {
	return domain.DateOf(s.now())
}

// ===============================
// Working-hours resolver
// ===============================

// ResolveWorkingHours returns the outer open envelope of date, or false when
// the day is closed.
func (s *Scheduler) ResolveWorkingHours(ctx context.Context, date time.Time) (domain.Interval, bool, error) {
	window, _, open, err := s.resolve(ctx, domain.DateOf(date))
	return window, open, err
}

// resolve also hands back the blocks it read so callers don't query twice.
func (s *Scheduler) resolve(ctx context.Context, date time.Time) (domain.Interval, []domain.BlockedRange, bool, error) {
	blocks, err := s.repo.ListBlockedRanges(ctx, date)
	if err != nil {
		return domain.Interval{}, nil, false, err
	}

	if domain.HasWholeDay(blocks) {
		return domain.Interval{}, blocks, false, nil
	}

	window, open := s.rules.Weekly.Hours(date)
	if !open {
		return domain.Interval{}, blocks, false, nil
	}

	if len(blocks) == 0 {
		return window, blocks, true, nil
	}

	window, open = domain.TrimEdges(window, domain.Intervals(blocks))
	return window, blocks, open, nil
}

// BlockedRanges lists the blocks stored for date in start order.
func (s *Scheduler) BlockedRanges(ctx context.Context, date time.Time) ([]domain.BlockedRange, error) {
	ranges, err := s.repo.ListBlockedRanges(ctx, domain.DateOf(date))
	if err != nil {
		return nil, err
	}
	domain.SortBlocks(ranges)
	return ranges, nil
}

// ===============================
// Availability computer
// ===============================

// FreeIntervals is the resolved window minus every block and appointment.
func (s *Scheduler) FreeIntervals(ctx context.Context, date time.Time) ([]domain.Interval, error) {
	date = domain.DateOf(date)

	window, blocks, open, err := s.resolve(ctx, date)
	if err != nil {
		return nil, err
	}
	if !open {
		return []domain.Interval{}, nil
	}

	booked, err := s.repo.ListOccupiedIntervals(ctx, date)
	if err != nil {
		return nil, err
	}

	occupied := append(domain.Intervals(blocks), booked...)
	free := domain.Subtract(window, occupied)

	for _, iv := range free {
		if !iv.Valid() {
			s.log.Error("inverted free interval",
				zap.String("date", domain.DateKey(date)),
				zap.Stringer("interval", iv),
			)
			return nil, fmt.Errorf("free interval %s on %s: %w", iv, domain.DateKey(date), domain.ErrInvalidInterval)
		}
	}

	return free, nil
}

// CandidateSlots slices the free intervals into procedure-sized slots. An
// empty procedure returns the free intervals themselves; an unknown one
// yields no slots.
func (s *Scheduler) CandidateSlots(ctx context.Context, date time.Time, procedure string) ([]domain.Interval, error) {
	procedure = strings.TrimSpace(procedure)

	var duration time.Duration
	if procedure != "" {
		d, ok := s.rules.Catalog.Duration(procedure)
		if !ok {
			s.log.Debug("unknown procedure", zap.String("procedure", procedure))
			return []domain.Interval{}, nil
		}
		duration = d
	}

	free, err := s.FreeIntervals(ctx, date)
	if err != nil {
		return nil, err
	}
	if procedure == "" {
		return free, nil
	}

	slots := domain.SliceSlots(free, duration, s.rules.Settings.Step)
	s.log.Debug("slots generated",
		zap.String("date", domain.DateKey(date)),
		zap.String("procedure", procedure),
		zap.Int("count", len(slots)),
	)
	return slots, nil
}

// ===============================
// Lookahead scanner
// ===============================

// AvailableDates lists bookable dates in ascending order, either for one
// month or for the rolling window starting today.
func (s *Scheduler) AvailableDates(ctx context.Context, procedure string, month *domain.YearMonth) ([]time.Time, error) {
	today := s.Today()
	procedure = strings.TrimSpace(procedure)

	from, to, ok := domain.ScanRange(today, month, s.rules.Settings.DaysLookahead)
	if !ok {
		return []time.Time{}, nil
	}

	key := cacheKey(today, procedure, month)
	cached, gen, hit := s.cache.Dates(ctx, key)
	if hit {
		if dates, err := parseDates(cached, today.Location()); err == nil {
			return dates, nil
		}
	}

	dates := []time.Time{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if s.rules.Weekly.ClosedOn(d) {
			continue
		}

		if procedure == "" {
			_, open, err := s.ResolveWorkingHours(ctx, d)
			if err != nil {
				return nil, err
			}
			if open {
				dates = append(dates, d)
			}
			continue
		}

		slots, err := s.CandidateSlots(ctx, d, procedure)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			dates = append(dates, d)
		}
	}

	s.cache.StoreDates(ctx, key, gen, formatDates(dates))
	return dates, nil
}

// AvailableMonths is the month picker: the current month and the following
// ones up to the configured lookahead.
func (s *Scheduler) AvailableMonths() []domain.YearMonth {
	return domain.AvailableMonths(s.Today(), s.rules.Settings.MonthsLookahead)
}

func (s *Scheduler) MonthAllowed(ym domain.YearMonth) bool {
	return domain.WithinMonths(s.Today(), ym, s.rules.Settings.MonthsLookahead)
}

// -------- cache helpers --------

func cacheKey(today time.Time, procedure string, month *domain.YearMonth) string {
	m := "rolling"
	if month != nil {
		m = fmt.Sprintf("%04d-%02d", month.Year, month.Month)
	}
	return domain.DateKey(today) + "|" + procedure + "|" + m
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.DateKey(d))
	}
	return out
}

func parseDates(raw []string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := time.ParseInLocation("2006-01-02", r, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// noCache is used when no cache is configured.
type noCache struct{}

func (noCache) Dates(context.Context, string) ([]string, int64, bool) { return nil, -1, false }
func (noCache) StoreDates(context.Context, string, int64, []string)   {}
func (noCache) Invalidate(context.Context)                            {}
