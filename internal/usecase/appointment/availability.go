package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

// Availability is the read side the booking path re-checks against.
type Availability interface {
	Today() time.Time
	Rules() *schedule.Rules
	CandidateSlots(ctx context.Context, date time.Time, procedure string) ([]schedule.Interval, error)
	BlockedRanges(ctx context.Context, date time.Time) ([]schedule.BlockedRange, error)
}

// Invalidator drops cached lookahead results after a booking change.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type noInvalidator struct{}

func (noInvalidator) Invalidate(context.Context) {}
