package appointment

import (
	"context"
	"sort"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type memRepo struct {
	clients      map[uint]*models.Client
	appointments map[uint]models.Appointment
	nextID       uint
	failCreate   error
}

func newMemRepo() *memRepo {
	return &memRepo{
		clients:      map[uint]*models.Client{},
		appointments: map[uint]models.Appointment{},
	}
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) addClient(name, phone string) *models.Client {
	r.nextID++
	c := &models.Client{ID: r.nextID, Name: name, Telephone: phone}
	r.clients[c.ID] = c
	return c
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	snapshot := make(map[uint]models.Appointment, len(r.appointments))
	for k, v := range r.appointments {
		snapshot[k] = v
	}
	if err := fn(r); err != nil {
		r.appointments = snapshot
		return err
	}
	return nil
}

func (r *memRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) GetClientByChatID(ctx context.Context, chatID int64) (*models.Client, error) {
	for _, c := range r.clients {
		if c.ChatID != nil && *c.ChatID == chatID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
}

func (r *memRepo) FindClientsByTelephone(ctx context.Context, telephone string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		if c.Telephone == telephone {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memRepo) UpsertClientByChatID(ctx context.Context, client *models.Client) error {
	if existing, err := r.GetClientByChatID(ctx, *client.ChatID); err == nil {
		client.ID = existing.ID
	} else {
		r.nextID++
		client.ID = r.nextID
	}
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *memRepo) CreateClient(ctx context.Context, client *models.Client) error {
	r.nextID++
	client.ID = r.nextID
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *memRepo) UpdateClient(ctx context.Context, client *models.Client) error {
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *memRepo) ListClients(ctx context.Context, query string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.failCreate != nil {
		err := r.failCreate
		r.failCreate = nil
		return err
	}
	for _, other := range r.appointments {
		if schedule.DateKey(other.Date) == schedule.DateKey(ap.Date) && other.StartTime == ap.StartTime {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) AssertNoTimeConflict(ctx context.Context, date time.Time, slot schedule.Interval) error {
	for _, other := range r.appointments {
		if schedule.DateKey(other.Date) == schedule.DateKey(date) && schedule.Overlaps(other.Interval(), slot) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}
	return nil
}

func (r *memRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if c, ok := r.clients[ap.ClientID]; ok {
		ap.Client = *c
	}
	return &ap, nil
}

func (r *memRepo) DeleteAppointment(ctx context.Context, id uint) error {
	if _, ok := r.appointments[id]; !ok {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	delete(r.appointments, id)
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		k := schedule.DateKey(ap.Date)
		return k >= schedule.DateKey(from) && k < schedule.DateKey(to)
	}), nil
}

func (r *memRepo) ListAppointmentsByClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.ClientID == clientID }), nil
}

func (r *memRepo) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return r.filter(func(models.Appointment) bool { return true }), nil
}

func (r *memRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if keep(ap) {
			if c, ok := r.clients[ap.ClientID]; ok {
				ap.Client = *c
			}
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := schedule.DateKey(out[i].Date), schedule.DateKey(out[j].Date)
		if ki != kj {
			return ki < kj
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// fakeAvailability computes free time from the booked appointments and the
// blocks of a date inside fixed 09:00-16:00 hours.
type fakeAvailability struct {
	repo   *memRepo
	rules  *schedule.Rules
	today  time.Time
	blocks map[string][]schedule.BlockedRange
}

func newFakeAvailability(repo *memRepo) *fakeAvailability {
	return &fakeAvailability{
		repo:   repo,
		rules:  schedule.DefaultRules(),
		today:  day(2026, time.October, 12),
		blocks: map[string][]schedule.BlockedRange{},
	}
}

func (f *fakeAvailability) block(date time.Time, iv schedule.Interval) {
	k := schedule.DateKey(date)
	f.blocks[k] = append(f.blocks[k], schedule.BlockedRange{
		ID:       uint(len(f.blocks[k]) + 1),
		Date:     date,
		Interval: iv,
	})
}

func (f *fakeAvailability) BlockedRanges(ctx context.Context, date time.Time) ([]schedule.BlockedRange, error) {
	return append([]schedule.BlockedRange(nil), f.blocks[schedule.DateKey(date)]...), nil
}

func (f *fakeAvailability) Today() time.Time        { return f.today }
func (f *fakeAvailability) Rules() *schedule.Rules { return f.rules }

func (f *fakeAvailability) CandidateSlots(ctx context.Context, date time.Time, procedure string) ([]schedule.Interval, error) {
	busy := schedule.Intervals(f.blocks[schedule.DateKey(date)])
	for _, ap := range f.repo.appointments {
		if schedule.DateKey(ap.Date) == schedule.DateKey(date) {
			busy = append(busy, ap.Interval())
		}
	}
	free := schedule.Subtract(schedule.Interval{Start: hm(9, 0), End: hm(16, 0)}, busy)
	if procedure == "" {
		return free, nil
	}
	d, ok := f.rules.Catalog.Duration(procedure)
	if !ok {
		return []schedule.Interval{}, nil
	}
	return schedule.SliceSlots(free, d, f.rules.Settings.Step), nil
}

type countingCache struct{ n int }

func (c *countingCache) Invalidate(context.Context) { c.n++ }

func hm(h, m int) schedule.TimeOfDay { return schedule.Clock(h, m, 0) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
