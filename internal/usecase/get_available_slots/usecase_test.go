package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	slotcache "github.com/coiffurelab/salon-booking-service/internal/infra/cache/slots"
	catalogRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (r *fakeAppointmentRepo) ListActiveForStaffDay(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.Appointment, error) {
	r.calls++
	return r.appointments, r.err
}

type fakeScheduleRepo struct {
	workingHours *domain.WorkingHours
	err          error
	calls        int
}

func (r *fakeScheduleRepo) GetByStaffAndWeekday(_ context.Context, _ uuid.UUID, _ int) (*domain.WorkingHours, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.workingHours, nil
}

type fakeHolidayRepo struct {
	holidays []*domain.Holiday
	err      error
}

func (r *fakeHolidayRepo) ListForStaffOnDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.Holiday, error) {
	return r.holidays, r.err
}

type fakeCatalogRepo struct {
	service *domain.Service
	staff   *domain.StaffMember

	serviceErr error
	staffErr   error
}

func (r *fakeCatalogRepo) GetService(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	return r.service, nil
}

func (r *fakeCatalogRepo) GetStaff(_ context.Context, _ uuid.UUID) (*domain.StaffMember, error) {
	if r.staffErr != nil {
		return nil, r.staffErr
	}
	return r.staff, nil
}

type fakeCache struct {
	entries map[string][]domain.Slot
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]domain.Slot)}
}

func cacheKey(staffID uuid.UUID, date time.Time, serviceID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", staffID, date.Format(domain.DateFormat), serviceID)
}

func (c *fakeCache) Get(_ context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID) ([]domain.Slot, error) {
	if grid, ok := c.entries[cacheKey(staffID, date, serviceID)]; ok {
		return grid, nil
	}
	return nil, slotcache.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID, slots []domain.Slot) error {
	c.sets++
	c.entries[cacheKey(staffID, date, serviceID)] = slots
	return nil
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	holidays     *fakeHolidayRepo
	catalog      *fakeCatalogRepo
	cache        *fakeCache

	staffID   uuid.UUID
	serviceID uuid.UUID
	date      time.Time
}

// newFixture wires a Monday 09:00-17:00 schedule with a 12:00-13:00 break,
// a 30 minute service and a clock set the evening before, so the advance
// cutoff never filters unless a test moves the clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		holidays:     &fakeHolidayRepo{},
		cache:        newFakeCache(),
		staffID:      uuid.New(),
		serviceID:    uuid.New(),
		date:         time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
	}
	f.schedule = &fakeScheduleRepo{
		workingHours: &domain.WorkingHours{
			StaffID:    f.staffID,
			Weekday:    1,
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("17:00"),
			BreakStart: types.TimeString("12:00"),
			BreakEnd:   types.TimeString("13:00"),
		},
	}
	f.catalog = &fakeCatalogRepo{
		service: &domain.Service{ID: f.serviceID, Name: "Haircut", DurationMinutes: 30, Active: true},
		staff:   &domain.StaffMember{ID: f.staffID, FullName: "Mia Weber", Active: true},
	}

	f.uc = NewUseCase(f.appointments, f.schedule, f.holidays, f.catalog, f.cache, Config{
		SlotIntervalMinutes: 30,
		MinAdvanceHours:     1,
	}, nopLogger{}).WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)})

	return f
}

func (f *fixture) request() *Request {
	return &Request{StaffID: f.staffID, ServiceID: f.serviceID, Date: f.date}
}

func (f *fixture) activeAppointment(start, end string) *domain.Appointment {
	return &domain.Appointment{
		StaffID:   f.staffID,
		Date:      f.date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Format("15:04"))
	}
	return starts
}

func TestExecuteSkipsBreakWithoutShiftingRhythm(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}, starts)
}

func TestExecuteLastSlotMayEndAtClose(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.DurationMinutes = 60

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.Contains(t, starts, "16:00", "a slot ending exactly at close is kept")
	assert.NotContains(t, starts, "16:30")
}

func TestExecuteHourLongServiceMayRunIntoBreak(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.DurationMinutes = 60

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Only starts inside [12:00, 13:00) are dropped. 11:30 is emitted even
	// though the hour-long service runs into the break.
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
	}, slotStarts(resp.Slots))
}

func TestExecuteMarksBookingConflicts(t *testing.T) {
	f := newFixture(t)
	f.appointments.appointments = []*domain.Appointment{
		f.activeAppointment("14:00", "14:30"),
	}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, "14:00")
	assert.Contains(t, starts, "13:30", "slot ending when the booking starts stays free")
	assert.Contains(t, starts, "14:30", "slot starting when the booking ends stays free")
}

func TestExecuteIgnoresInactiveAppointments(t *testing.T) {
	f := newFixture(t)
	cancelled := f.activeAppointment("14:00", "14:30")
	cancelled.Status = domain.StatusCancelled
	f.appointments.appointments = []*domain.Appointment{cancelled}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Contains(t, slotStarts(resp.Slots), "14:00")
}

func TestExecuteAppliesAdvanceCutoffStrictly(t *testing.T) {
	f := newFixture(t)
	// Same day, 10:00. With one hour minimum advance the cutoff is 11:00.
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 16, 10, 0, 0, 0, time.UTC)})

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, "11:00", "slot starting exactly at the cutoff is excluded")
	assert.Contains(t, starts, "11:30")
	assert.NotContains(t, starts, "10:30")
}

func TestExecuteHolidayYieldsEmptyGrid(t *testing.T) {
	f := newFixture(t)
	f.holidays.holidays = []*domain.Holiday{{
		Scope:     domain.GlobalScope(),
		Name:      "Public holiday",
		StartDate: f.date,
		EndDate:   f.date,
	}}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteOtherStaffHolidayDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.holidays.holidays = []*domain.Holiday{{
		Scope:     domain.StaffScope(uuid.New()),
		Name:      "Vacation",
		StartDate: f.date,
		EndDate:   f.date,
	}}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
}

func TestExecuteDayOffYieldsEmptyGrid(t *testing.T) {
	f := newFixture(t)
	f.schedule.err = scheduleRepo.ErrWorkingHoursNotFound

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteInactiveStaffYieldsEmptyGrid(t *testing.T) {
	f := newFixture(t)
	f.catalog.staff.Active = false

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, f.schedule.calls, "no schedule lookup for inactive staff")
}

func TestExecuteCatalogErrors(t *testing.T) {
	f := newFixture(t)
	f.catalog.serviceErr = catalogRepo.ErrServiceNotFound
	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrServiceNotFound)

	f = newFixture(t)
	f.catalog.staffErr = catalogRepo.ErrStaffNotFound
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrStaffNotFound)

	f = newFixture(t)
	f.catalog.service.Active = false
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.StaffID = uuid.Nil
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request()
	req.Date = time.Time{}
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteServesFromCache(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.Equal(t, 1, f.cache.sets)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 1, f.schedule.calls, "second call is served from cache")
	assert.Equal(t, 1, f.appointments.calls)
	assert.Equal(t, 1, f.cache.sets)
	assert.Len(t, resp.Slots, 14)
}

func TestExecuteCachedGridStillFilteredByClock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// The clock moves into the afternoon; the cached grid itself is unchanged
	// but morning slots must no longer be offered.
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 16, 14, 0, 0, 0, time.UTC)})

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.Equal(t, []string{"15:30", "16:00", "16:30"}, starts)
	assert.Equal(t, 1, f.schedule.calls)
}

func TestExecuteRepositoryFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.appointments.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInternal)
}
