package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// AppointmentRepository persists appointments and surfaces conflicts.
type AppointmentRepository interface {
	Create(ctx context.Context, ap *domain.Appointment) (*domain.Appointment, error)
	FindConflicts(ctx context.Context, staffID uuid.UUID, date time.Time, start, end types.TimeString, excludeID *uuid.UUID) ([]*domain.Appointment, error)
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

// SlotCache invalidates cached grids after a write.
type SlotCache interface {
	Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error
}

// TransactionManager runs the conflict check and the insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictObserver is notified when the conflict guard rejects a booking.
// Optional.
type ConflictObserver interface {
	ObserveSlotConflict()
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
