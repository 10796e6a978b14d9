package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
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
	list        []*domain.Appointment

	cancelledID     *uuid.UUID
	cancelReason    *string
	cancelledAt     time.Time
	updatedStatusTo *domain.AppointmentStatus
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if r.appointment == nil || r.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return r.appointment, nil
}

func (r *fakeAppointmentRepo) GetByUserID(_ context.Context, _ uuid.UUID) ([]*domain.Appointment, error) {
	return r.list, nil
}

func (r *fakeAppointmentRepo) ListForStaffRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*domain.Appointment, error) {
	return r.list, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.AppointmentStatus) error {
	r.updatedStatusTo = &status
	return nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	r.cancelledID = &id
	r.cancelReason = reason
	r.cancelledAt = cancelledAt
	return nil
}

type fakeCatalogRepo struct {
	services []*domain.Service
}

func (r *fakeCatalogRepo) ListActiveServices(_ context.Context) ([]*domain.Service, error) {
	return r.services, nil
}

type fakeCache struct {
	invalidations int
}

func (c *fakeCache) Invalidate(_ context.Context, _ uuid.UUID, _ time.Time) error {
	c.invalidations++
	return nil
}

type fixture struct {
	svc   *Service
	repo  *fakeAppointmentRepo
	cache *fakeCache

	ownerID uuid.UUID
	adminID uuid.UUID
}

// newFixture wires a confirmed appointment on 2026-03-16 14:00 with a 24 hour
// cancellation window and the clock two days before.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:    &fakeAppointmentRepo{},
		cache:   &fakeCache{},
		ownerID: uuid.New(),
		adminID: uuid.New(),
	}
	f.repo.appointment = &domain.Appointment{
		ID:        uuid.New(),
		UserID:    f.ownerID,
		StaffID:   uuid.New(),
		ServiceID: uuid.New(),
		Date:      time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
		EndTime:   types.TimeString("14:30"),
		Status:    domain.StatusConfirmed,
	}

	f.svc = NewService(f.repo, &fakeCatalogRepo{}, f.cache, 24, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 14, 14, 0, 0, 0, time.UTC)})

	return f
}

func (f *fixture) id() uuid.UUID { return f.repo.appointment.ID }

func TestCancelByOwner(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{
		UserID: f.ownerID,
		Reason: ptr.Ptr("can't make it"),
	})
	require.NoError(t, err)

	require.NotNil(t, f.repo.cancelledID)
	assert.Equal(t, f.id(), *f.repo.cancelledID)
	require.NotNil(t, f.repo.cancelReason)
	assert.Equal(t, "can't make it", *f.repo.cancelReason)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestCancelWindowClosed(t *testing.T) {
	f := newFixture(t)
	// 23 hours before the 14:00 start: inside the 24 hour window.
	f.svc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 15, 15, 0, 0, 0, time.UTC)})

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{UserID: f.ownerID})
	assert.ErrorIs(t, err, ErrCancellationTooLate)
	assert.Equal(t, 0, f.cache.invalidations)
}

func TestCancelWindowStillOpen(t *testing.T) {
	f := newFixture(t)
	// 25 hours before the start.
	f.svc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 15, 13, 0, 0, 0, time.UTC)})

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{UserID: f.ownerID})
	assert.NoError(t, err)
}

func TestCancelWindowAppliesToAdmins(t *testing.T) {
	f := newFixture(t)
	// One hour before the start; the cutoff binds admins too.
	f.svc.WithTimeProvider(fixedClock{now: time.Date(2026, time.March, 16, 13, 0, 0, 0, time.UTC)})

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{
		UserID:  f.adminID,
		IsAdmin: true,
	})
	assert.ErrorIs(t, err, ErrCancellationTooLate)
}

func TestCancelAccessDenied(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelSettledAppointment(t *testing.T) {
	f := newFixture(t)
	f.repo.appointment.Status = domain.StatusCompleted

	err := f.svc.Cancel(context.Background(), f.id(), &models.CancelAppointmentRequest{UserID: f.ownerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), uuid.New(), &models.CancelAppointmentRequest{UserID: f.ownerID})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	f.repo.appointment.Status = domain.StatusPending

	err := f.svc.Confirm(context.Background(), f.id(), &models.ConfirmAppointmentRequest{
		UserID:  f.adminID,
		IsAdmin: true,
	})
	require.NoError(t, err)
	require.NotNil(t, f.repo.updatedStatusTo)
	assert.Equal(t, domain.StatusConfirmed, *f.repo.updatedStatusTo)
}

func TestConfirmRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.repo.appointment.Status = domain.StatusPending

	err := f.svc.Confirm(context.Background(), f.id(), &models.ConfirmAppointmentRequest{UserID: f.ownerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirmOnlyFromPending(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Confirm(context.Background(), f.id(), &models.ConfirmAppointmentRequest{
		UserID:  f.adminID,
		IsAdmin: true,
	})
	assert.ErrorIs(t, err, ErrCannotConfirm, "appointment is already confirmed")
}

func TestUpdateStatusTerminalTransitions(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateStatus(context.Background(), f.id(), &models.UpdateStatusRequest{
		UserID:  f.adminID,
		IsAdmin: true,
		Status:  "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, f.repo.updatedStatusTo)
	assert.Equal(t, domain.StatusCompleted, *f.repo.updatedStatusTo)
	assert.Equal(t, 1, f.cache.invalidations)

	f = newFixture(t)
	err = f.svc.UpdateStatus(context.Background(), f.id(), &models.UpdateStatusRequest{
		UserID:  f.adminID,
		IsAdmin: true,
		Status:  "no_show",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, *f.repo.updatedStatusTo)
}

func TestUpdateStatusRejectsNonTerminalTargets(t *testing.T) {
	f := newFixture(t)

	for _, status := range []string{"pending", "confirmed", "cancelled", "in_progress"} {
		err := f.svc.UpdateStatus(context.Background(), f.id(), &models.UpdateStatusRequest{
			UserID:  f.adminID,
			IsAdmin: true,
			Status:  status,
		})
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %s", status)
	}
}

func TestUpdateStatusRejectsSettledAppointment(t *testing.T) {
	f := newFixture(t)
	f.repo.appointment.Status = domain.StatusCancelled

	err := f.svc.UpdateStatus(context.Background(), f.id(), &models.UpdateStatusRequest{
		UserID:  f.adminID,
		IsAdmin: true,
		Status:  "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateStatus(context.Background(), f.id(), &models.UpdateStatusRequest{
		UserID: f.ownerID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), f.id(), f.ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, f.id(), resp.ID)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, "14:00", resp.StartTime)

	_, err = f.svc.GetByID(context.Background(), f.id(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = f.svc.GetByID(context.Background(), f.id(), f.adminID, true)
	require.NoError(t, err)
	assert.Equal(t, f.id(), resp.ID)
}

func TestGetUserAppointmentsStatusFilter(t *testing.T) {
	f := newFixture(t)
	f.repo.list = []*domain.Appointment{
		{ID: uuid.New(), UserID: f.ownerID, Status: domain.StatusConfirmed, Date: time.Now()},
		{ID: uuid.New(), UserID: f.ownerID, Status: domain.StatusCancelled, Date: time.Now()},
		{ID: uuid.New(), UserID: f.ownerID, Status: domain.StatusConfirmed, Date: time.Now()},
	}

	resp, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: f.ownerID,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	resp, err = f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: f.ownerID})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 3)

	_, err = f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: f.ownerID,
		Status: ptr.Ptr("in_progress"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStaffAppointments(t *testing.T) {
	f := newFixture(t)
	f.repo.list = []*domain.Appointment{f.repo.appointment}

	req := &models.GetStaffAppointmentsRequest{
		UserID:    f.adminID,
		IsAdmin:   true,
		StaffID:   f.repo.appointment.StaffID,
		StartDate: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC),
	}

	resp, err := f.svc.GetStaffAppointments(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	req.IsAdmin = false
	_, err = f.svc.GetStaffAppointments(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req.IsAdmin = true
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err = f.svc.GetStaffAppointments(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListServices(t *testing.T) {
	f := newFixture(t)
	catalog := &fakeCatalogRepo{services: []*domain.Service{
		{ID: uuid.New(), Name: "Haircut", DurationMinutes: 30, PriceCents: 3500, Active: true},
		{ID: uuid.New(), Name: "Coloring", DurationMinutes: 90, PriceCents: 9000, Active: true},
	}}
	f.svc = NewService(f.repo, catalog, f.cache, 24, nopLogger{})

	resp, err := f.svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, 30, resp.Services[0].DurationMinutes)
}
