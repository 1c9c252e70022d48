package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	ActionDayBlocked           = "day_blocked"
	ActionRangeBlocked         = "range_blocked"
	ActionRangeUnblocked       = "range_unblocked"
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentMoved     = "appointment_rescheduled"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionClientRegistered     = "client_registered"
	ActionClientUpdated        = "client_updated"
)

type Event struct {
	ActorID  *int64
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type actorKey struct{}

// WithActor tags ctx with the chat id of whoever triggered the request.
func WithActor(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

func ActorFrom(ctx context.Context) *int64 {
	if id, ok := ctx.Value(actorKey{}).(int64); ok {
		return &id
	}
	return nil
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
		cancel()
	}
}

// Dispatch never blocks the request path; a full queue drops the event.
// A nil dispatcher discards everything.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d == nil {
		return
	}
	if ev.ActorID == nil {
		ev.ActorID = ActorFrom(ctx)
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	<-d.done
}
