package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// AppointmentRepository is the persistence surface the service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)
	ListForStaffRange(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error
}

// CatalogRepository serves the public service listing.
type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
}

// SlotCache invalidates cached grids when a status change frees a slot.
type SlotCache interface {
	Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error
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
