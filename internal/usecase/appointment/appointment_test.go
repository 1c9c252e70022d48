package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

var wednesday = day(2026, time.October, 14)

type fixture struct {
	repo   *memRepo
	avail  *fakeAvailability
	cache  *countingCache
	create *CreateAppointment
	cancel *CancelAppointment
	move   *RescheduleAppointment
}

func newFixture() fixture {
	repo := newMemRepo()
	avail := newFakeAvailability(repo)
	cache := &countingCache{}
	return fixture{
		repo:   repo,
		avail:  avail,
		cache:  cache,
		create: NewCreateAppointment(repo, avail, cache, nil, zap.NewNop()),
		cancel: NewCancelAppointment(repo, cache, nil),
		move:   NewRescheduleAppointment(repo, avail, cache, nil, zap.NewNop()),
	}
}

func (f fixture) book(t *testing.T, clientID uint, procedure string, date time.Time, start schedule.TimeOfDay) uint {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  clientID,
		Procedure: procedure,
		Date:      date,
		Start:     start,
	})
	require.NoError(t, err)
	return ap.ID
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture()
	client := f.repo.addClient("Анна", "+79161234567")

	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		Procedure: "Процедура 3",
		Date:      wednesday,
		Start:     hm(10, 0),
		Comment:   "  первый визит ",
	})
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, hm(11, 30), ap.EndTime)
	assert.Equal(t, "первый визит", ap.Comment)
	assert.Equal(t, "Анна", ap.Client.Name)
	assert.Equal(t, 1, f.cache.n)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	f := newFixture()
	client := f.repo.addClient("Анна", "+79161234567")
	f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))

	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{"unknown procedure", CreateAppointmentInput{ClientID: client.ID, Procedure: "Маникюр", Date: wednesday, Start: hm(12, 0)}, httperr.CodeSlotUnavailable},
		{"overlaps booking", CreateAppointmentInput{ClientID: client.ID, Procedure: "Процедура 4", Date: wednesday, Start: hm(11, 0)}, httperr.CodeSlotUnavailable},
		{"past closing", CreateAppointmentInput{ClientID: client.ID, Procedure: "Процедура 3", Date: wednesday, Start: hm(15, 0)}, httperr.CodeSlotUnavailable},
		{"off step", CreateAppointmentInput{ClientID: client.ID, Procedure: "Процедура 4", Date: wednesday, Start: hm(12, 10)}, httperr.CodeSlotUnavailable},
		{"past date", CreateAppointmentInput{ClientID: client.ID, Procedure: "Процедура 4", Date: day(2026, time.October, 1), Start: hm(12, 0)}, httperr.CodeSlotUnavailable},
		{"unknown client", CreateAppointmentInput{ClientID: 999, Procedure: "Процедура 4", Date: wednesday, Start: hm(12, 0)}, httperr.CodeClientNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), err.Error())
		})
	}
}

func TestCreateAppointment_ConcurrentWriterLoses(t *testing.T) {
	f := newFixture()
	client := f.repo.addClient("Анна", "+79161234567")
	f.repo.failCreate = httperr.ErrBusiness(httperr.CodeSlotConflict)

	_, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		Procedure: "Процедура 4",
		Date:      wednesday,
		Start:     hm(12, 0),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	assert.Empty(t, f.repo.appointments)
	assert.Zero(t, f.cache.n)
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture()
	client := f.repo.addClient("Анна", "+79161234567")
	id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))

	ap, err := f.cancel.Execute(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, ap.ID)
	assert.Empty(t, f.repo.appointments)

	_, err = f.cancel.Execute(context.Background(), id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("same day overlapping its own slot", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))

		moved, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          wednesday,
			Start:         hm(10, 30),
		})
		require.NoError(t, err)
		assert.NotEqual(t, id, moved.ID)
		assert.Equal(t, hm(12, 0), moved.EndTime)
		assert.Equal(t, "Процедура 3", moved.Procedure)
		require.Len(t, f.repo.appointments, 1)
	})

	t.Run("another day", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))

		moved, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          day(2026, time.October, 16),
			Start:         hm(9, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-16", schedule.DateKey(moved.Date))
		require.Len(t, f.repo.appointments, 1)
	})

	t.Run("taken slot keeps the original", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))
		f.book(t, client.ID, "Процедура 3", wednesday, hm(13, 0))

		_, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          wednesday,
			Start:         hm(12, 30),
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
		assert.Contains(t, f.repo.appointments, id)
	})

	t.Run("blocked part of its own slot stays blocked", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))
		f.avail.block(wednesday, schedule.Interval{Start: hm(10, 0), End: hm(12, 0)})

		_, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          wednesday,
			Start:         hm(9, 30),
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
		assert.Contains(t, f.repo.appointments, id)
	})

	t.Run("uncovered part of its own slot is released", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))
		f.avail.block(wednesday, schedule.Interval{Start: hm(11, 0), End: hm(12, 0)})

		moved, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          wednesday,
			Start:         hm(9, 30),
		})
		require.NoError(t, err)
		assert.Equal(t, hm(11, 0), moved.EndTime)
	})

	t.Run("failed insert rolls back the delete", func(t *testing.T) {
		f := newFixture()
		client := f.repo.addClient("Анна", "+79161234567")
		id := f.book(t, client.ID, "Процедура 3", wednesday, hm(10, 0))
		f.repo.failCreate = httperr.Persistence("create appointment", errors.New("connection reset"))

		_, err := f.move.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: id,
			Date:          wednesday,
			Start:         hm(14, 0),
		})
		assert.True(t, httperr.IsPersistence(err))
		assert.Contains(t, f.repo.appointments, id)
	})

	t.Run("missing appointment", func(t *testing.T) {
		f := newFixture()
		_, err := f.move.Execute(ctx, RescheduleAppointmentInput{AppointmentID: 7, Date: wednesday, Start: hm(9, 0)})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
	})
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	anna := f.repo.addClient("Анна", "+79161234567")
	olga := f.repo.addClient("Ольга", "+79160000000")

	f.book(t, anna.ID, "Процедура 4", wednesday, hm(12, 0))
	f.book(t, olga.ID, "Процедура 4", wednesday, hm(9, 0))
	f.book(t, anna.ID, "Процедура 4", day(2026, time.November, 2), hm(9, 0))

	byDate, err := NewListAppointmentsByDate(f.repo).Execute(ctx, wednesday)
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "09:00", byDate[0].StartTime)
	assert.Equal(t, "Ольга", byDate[0].ClientName)

	byMonth, err := NewListAppointmentsByMonth(f.repo, time.UTC).Execute(ctx, schedule.YearMonth{Year: 2026, Month: time.October})
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	byClient, err := NewListClientAppointments(f.repo).Execute(ctx, anna.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 2)
	assert.Equal(t, "2026-10-14", byClient[0].Date)
	assert.Equal(t, "2026-11-02", byClient[1].Date)

	_, err = NewListClientAppointments(f.repo).Execute(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))

	all, err := NewListAllAppointments(f.repo).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
