package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
	"github.com/coiffurelab/salon-booking-service/pkg/ptr"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAppointmentRepo struct {
	conflicts    []*domain.Appointment
	conflictsErr error

	created   *domain.Appointment
	createErr error
}

func (r *fakeAppointmentRepo) FindConflicts(_ context.Context, _ uuid.UUID, _ time.Time, _, _ types.TimeString, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	return r.conflicts, r.conflictsErr
}

func (r *fakeAppointmentRepo) Create(_ context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *ap
	created.ID = uuid.New()
	created.CreatedAt = time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	r.created = &created
	return &created, nil
}

type fakeScheduleRepo struct {
	workingHours *domain.WorkingHours
	err          error
}

func (r *fakeScheduleRepo) GetByStaffAndWeekday(_ context.Context, _ uuid.UUID, _ int) (*domain.WorkingHours, error) {
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
}

func (r *fakeCatalogRepo) GetService(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	return r.service, nil
}

func (r *fakeCatalogRepo) GetStaff(_ context.Context, _ uuid.UUID) (*domain.StaffMember, error) {
	return r.staff, nil
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Invalidate(_ context.Context, staffID uuid.UUID, date time.Time) error {
	c.invalidated = append(c.invalidated, staffID.String()+":"+date.Format(domain.DateFormat))
	return nil
}

// passthroughTxManager runs the callback directly; serializable semantics are
// covered by the txmanager package tests.
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type countingConflictObserver struct {
	conflicts int
}

func (o *countingConflictObserver) ObserveSlotConflict() { o.conflicts++ }

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	holidays     *fakeHolidayRepo
	catalog      *fakeCatalogRepo
	cache        *fakeCache
	tx           *passthroughTxManager
	observer     *countingConflictObserver

	userID    uuid.UUID
	staffID   uuid.UUID
	serviceID uuid.UUID
	date      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		holidays:     &fakeHolidayRepo{},
		cache:        &fakeCache{},
		tx:           &passthroughTxManager{},
		observer:     &countingConflictObserver{},
		userID:       uuid.New(),
		staffID:      uuid.New(),
		serviceID:    uuid.New(),
		date:         time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), // a Monday
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
		service: &domain.Service{ID: f.serviceID, Name: "Haircut", DurationMinutes: 30, PriceCents: 3500, Active: true},
		staff:   &domain.StaffMember{ID: f.staffID, FullName: "Mia Weber", Active: true},
	}

	f.uc = NewUseCase(f.appointments, f.schedule, f.holidays, f.catalog, f.cache, f.tx, 1, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)}).
		WithConflictObserver(f.observer)

	return f
}

func (f *fixture) request(start string) *Request {
	return &Request{
		UserID:    f.userID,
		StaffID:   f.staffID,
		ServiceID: f.serviceID,
		Date:      f.date,
		StartTime: types.TimeString(start),
	}
}

func (f *fixture) occupied(start, end string) *domain.Appointment {
	return &domain.Appointment{
		StaffID:   f.staffID,
		Date:      f.date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func TestExecuteCreatesPendingAppointment(t *testing.T) {
	f := newFixture(t)

	req := f.request("14:00")
	req.Notes = ptr.Ptr("please use the herbal shampoo")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:30"), resp.EndTime)

	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 3500, resp.ServicePriceCents)
	assert.Equal(t, 30, resp.ServiceDurationMinutes)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "please use the herbal shampoo", *resp.Notes)

	assert.Equal(t, 1, f.tx.calls, "conflict check and insert run transactionally")
	assert.Equal(t, []string{f.staffID.String() + ":2026-03-16"}, f.cache.invalidated)
	assert.Equal(t, 0, f.observer.conflicts)
}

func TestExecuteRejectsOverlappingWindow(t *testing.T) {
	f := newFixture(t)
	f.appointments.conflicts = []*domain.Appointment{f.occupied("14:00", "14:30")}

	_, err := f.uc.Execute(context.Background(), f.request("14:15"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, f.observer.conflicts)
	assert.Empty(t, f.cache.invalidated, "no invalidation on a rejected booking")
}

func TestExecuteAcceptsBackToBackWindow(t *testing.T) {
	f := newFixture(t)
	// The repository query uses half-open overlap, so an appointment ending
	// at 14:30 does not come back as a conflict for a 14:30 start.

	resp, err := f.uc.Execute(context.Background(), f.request("14:30"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
}

func TestExecuteRejectsDuplicateStartFromConstraint(t *testing.T) {
	f := newFixture(t)
	f.appointments.createErr = appointmentRepo.ErrDuplicateStart

	_, err := f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, f.observer.conflicts)
}

func TestExecuteRejectsTooSoonStrictly(t *testing.T) {
	f := newFixture(t)
	// Same day at 13:00 with one hour notice: cutoff is 14:00.
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 16, 13, 0, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrBookingTooSoon, "start exactly at the cutoff is rejected")

	_, err = f.uc.Execute(context.Background(), f.request("14:30"))
	assert.NoError(t, err)
}

func TestExecuteRejectsOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request("08:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// 16:45 + 30min runs past closing.
	_, err = f.uc.Execute(context.Background(), f.request("16:45"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Ending exactly at close is fine.
	_, err = f.uc.Execute(context.Background(), f.request("16:30"))
	assert.NoError(t, err)
}

func TestExecuteBreakRuleMatchesSlotGrid(t *testing.T) {
	f := newFixture(t)

	// Starts inside [12:00, 13:00) are rejected.
	_, err := f.uc.Execute(context.Background(), f.request("12:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.uc.Execute(context.Background(), f.request("12:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// A start before the break is accepted even when the service runs into
	// it, matching the slots the availability grid offers.
	_, err = f.uc.Execute(context.Background(), f.request("11:45"))
	assert.NoError(t, err)

	// Starting exactly when the break ends is fine.
	_, err = f.uc.Execute(context.Background(), f.request("13:00"))
	assert.NoError(t, err)
}

func TestExecuteRejectsWindowWrappingMidnight(t *testing.T) {
	f := newFixture(t)
	f.schedule.workingHours.EndTime = types.TimeString("23:45")
	f.schedule.workingHours.BreakStart = ""
	f.schedule.workingHours.BreakEnd = ""

	// 23:30 + 30min wraps to 00:00; the window cannot fit the day.
	_, err := f.uc.Execute(context.Background(), f.request("23:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteRejectsHoliday(t *testing.T) {
	f := newFixture(t)
	f.holidays.holidays = []*domain.Holiday{{
		Scope:     domain.StaffScope(f.staffID),
		Name:      "Vacation",
		StartDate: f.date,
		EndDate:   f.date,
	}}

	_, err := f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecuteRejectsDayOff(t *testing.T) {
	f := newFixture(t)
	f.schedule.err = scheduleRepo.ErrWorkingHoursNotFound

	_, err := f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecuteRejectsInactiveTargets(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.Active = false
	_, err := f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrServiceInactive)

	f = newFixture(t)
	f.catalog.staff.Active = false
	_, err = f.uc.Execute(context.Background(), f.request("14:00"))
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	req := f.request("14:00")
	req.UserID = uuid.Nil
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request("25:99")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}
	req = f.request("14:00")
	req.Notes = ptr.Ptr(string(long))
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
