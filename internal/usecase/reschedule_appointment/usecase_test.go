package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
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
	appointment *domain.Appointment
	getErr      error

	conflicts      []*domain.Appointment
	lastExcludedID *uuid.UUID
	updated        *domain.Appointment
	updateErr      error
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.appointment, nil
}

func (r *fakeAppointmentRepo) FindConflicts(_ context.Context, _ uuid.UUID, _ time.Time, _, _ types.TimeString, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	r.lastExcludedID = excludeID
	return r.conflicts, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, ap *domain.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = ap
	return nil
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
}

func (r *fakeHolidayRepo) ListForStaffOnDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.Holiday, error) {
	return r.holidays, nil
}

type fakeCatalogRepo struct {
	staff map[uuid.UUID]*domain.StaffMember
}

func (r *fakeCatalogRepo) GetStaff(_ context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	if s, ok := r.staff[id]; ok {
		return s, nil
	}
	return nil, nil
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Invalidate(_ context.Context, staffID uuid.UUID, date time.Time) error {
	c.invalidated = append(c.invalidated, staffID.String()+":"+date.Format(domain.DateFormat))
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	holidays     *fakeHolidayRepo
	catalog      *fakeCatalogRepo
	cache        *fakeCache

	ownerID uuid.UUID
	staffID uuid.UUID
	oldDate time.Time
	newDate time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		holidays: &fakeHolidayRepo{},
		cache:    &fakeCache{},
		ownerID:  uuid.New(),
		staffID:  uuid.New(),
		oldDate:  time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), // Monday
		newDate:  time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), // Tuesday
	}
	f.appointments = &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:                     uuid.New(),
			UserID:                 f.ownerID,
			StaffID:                f.staffID,
			ServiceID:              uuid.New(),
			Date:                   f.oldDate,
			StartTime:              types.TimeString("14:00"),
			EndTime:                types.TimeString("14:30"),
			Status:                 domain.StatusConfirmed,
			ServiceName:            "Haircut",
			ServiceDurationMinutes: 30,
		},
	}
	f.schedule = &fakeScheduleRepo{
		workingHours: &domain.WorkingHours{
			StaffID:   f.staffID,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("17:00"),
		},
	}
	f.catalog = &fakeCatalogRepo{staff: map[uuid.UUID]*domain.StaffMember{
		f.staffID: {ID: f.staffID, FullName: "Mia Weber", Active: true},
	}}

	f.uc = NewUseCase(f.appointments, f.schedule, f.holidays, f.catalog, f.cache, passthroughTxManager{}, 1, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)})

	return f
}

func (f *fixture) request(start string) *Request {
	return &Request{
		AppointmentID: f.appointments.appointment.ID,
		UserID:        f.ownerID,
		Date:          f.newDate,
		StartTime:     types.TimeString(start),
	}
}

func TestExecuteMovesAppointment(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request("10:00"))
	require.NoError(t, err)

	assert.Equal(t, f.newDate, resp.Date)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime, "duration comes from the booked service")
	assert.Equal(t, "confirmed", resp.Status, "status survives the move")

	require.NotNil(t, f.appointments.updated)
	assert.Equal(t, f.newDate, f.appointments.updated.Date)

	// Both the vacated day and the target day are invalidated.
	assert.Equal(t, []string{
		f.staffID.String() + ":2026-03-16",
		f.staffID.String() + ":2026-03-17",
	}, f.cache.invalidated)
}

func TestExecuteExcludesItselfFromConflictCheck(t *testing.T) {
	f := newFixture(t)

	// Move within the same day, overlapping the current window.
	req := f.request("14:15")
	req.Date = f.oldDate

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, f.appointments.lastExcludedID)
	assert.Equal(t, f.appointments.appointment.ID, *f.appointments.lastExcludedID)

	// Same staff and day: one invalidation is enough.
	assert.Equal(t, []string{f.staffID.String() + ":2026-03-16"}, f.cache.invalidated)
}

func TestExecuteMovesToAnotherStaffMember(t *testing.T) {
	f := newFixture(t)
	otherStaff := uuid.New()
	f.catalog.staff[otherStaff] = &domain.StaffMember{ID: otherStaff, FullName: "Lena Faro", Active: true}

	req := f.request("10:00")
	req.Date = f.oldDate
	req.StaffID = ptr.Ptr(otherStaff)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, otherStaff, resp.StaffID)

	assert.Equal(t, []string{
		f.staffID.String() + ":2026-03-16",
		otherStaff.String() + ":2026-03-16",
	}, f.cache.invalidated)
}

func TestExecuteRejectsConflict(t *testing.T) {
	f := newFixture(t)
	f.appointments.conflicts = []*domain.Appointment{{
		StaffID:   f.staffID,
		Date:      f.newDate,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("10:30"),
		Status:    domain.StatusPending,
	}}

	_, err := f.uc.Execute(context.Background(), f.request("10:15"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecuteRejectsDuplicateStartFromConstraint(t *testing.T) {
	f := newFixture(t)
	f.appointments.updateErr = appointmentRepo.ErrDuplicateStart

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecuteOwnership(t *testing.T) {
	f := newFixture(t)

	req := f.request("10:00")
	req.UserID = uuid.New()
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Admins may move anyone's appointment.
	req.IsAdmin = true
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteRejectsSettledAppointments(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow,
	} {
		f := newFixture(t)
		f.appointments.appointment.Status = status

		_, err := f.uc.Execute(context.Background(), f.request("10:00"))
		assert.ErrorIs(t, err, ErrNotReschedulable, "status %s", status)
	}
}

func TestExecuteNotFound(t *testing.T) {
	f := newFixture(t)
	f.appointments.getErr = appointmentRepo.ErrAppointmentNotFound

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecuteRejectsTooSoon(t *testing.T) {
	f := newFixture(t)
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 17, 9, 30, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), f.request("10:30"))
	assert.ErrorIs(t, err, ErrBookingTooSoon, "start exactly at the cutoff is rejected")

	_, err = f.uc.Execute(context.Background(), f.request("11:00"))
	assert.NoError(t, err)
}

func TestExecuteRejectsBlockedTargetDate(t *testing.T) {
	f := newFixture(t)
	f.holidays.holidays = []*domain.Holiday{{
		Scope:     domain.GlobalScope(),
		Name:      "Public holiday",
		StartDate: f.newDate,
		EndDate:   f.newDate,
	}}

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecuteRejectsOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request("16:45"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteRejectsWindowWrappingMidnight(t *testing.T) {
	f := newFixture(t)
	f.schedule.workingHours.EndTime = types.TimeString("23:45")

	// 23:30 + 30min wraps to 00:00; the window cannot fit the day.
	_, err := f.uc.Execute(context.Background(), f.request("23:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}
