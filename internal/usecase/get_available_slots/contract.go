package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// AppointmentRepository loads the bookings that occupy slots.
type AppointmentRepository interface {
	ListActiveForStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// ScheduleRepository loads the staff member's weekly working hours.
type ScheduleRepository interface {
	GetByStaffAndWeekday(ctx context.Context, staffID uuid.UUID, weekday int) (*domain.WorkingHours, error)
}

// HolidayRepository loads closures and leave that may block the date.
type HolidayRepository interface {
	ListForStaffOnDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Holiday, error)
}

// CatalogRepository resolves the requested service and staff member.
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
}

// SlotCache stores computed grids between writes. A nil implementation is not
// allowed; use a no-op cache when redis is disabled.
type SlotCache interface {
	Get(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID) ([]domain.Slot, error)
	Set(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID, slots []domain.Slot) error
}

// TimeProvider supplies the current time, injectable for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled printf logger subset used here.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
