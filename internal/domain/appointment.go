package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

var (
	// ErrNotCancellable is returned when the appointment status forbids
	// cancellation.
	ErrNotCancellable = errors.New("domain: appointment cannot be cancelled")

	// ErrNotConfirmable is returned when confirming a non-pending appointment.
	ErrNotConfirmable = errors.New("domain: appointment cannot be confirmed")

	// ErrNotActive is returned for completion or no-show transitions on an
	// appointment that no longer occupies a slot.
	ErrNotActive = errors.New("domain: appointment is not active")
)

// Appointment is a booked service between a client and a staff member.
type Appointment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID

	Date      time.Time // date component only
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus

	// Denormalized service data kept for history after catalog edits.
	ServiceName            string
	ServicePriceCents      int
	ServiceDurationMinutes int

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment occupies its time slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled reports whether cancellation is permitted by status alone;
// the cancellation-window cutoff is checked separately.
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// CanBeRescheduled reports whether the appointment may still be moved.
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsActive()
}

// Interval returns the occupied [start, end) window as instants on the
// appointment's date.
func (a *Appointment) Interval() (TimeInterval, error) {
	start, err := a.StartTime.At(a.Date)
	if err != nil {
		return TimeInterval{}, err
	}
	end, err := a.EndTime.At(a.Date)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(start, end), nil
}

// StartsAt returns the appointment's starting instant.
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.At(a.Date)
}

// Confirm moves PENDING to CONFIRMED (payment success or admin action).
func (a *Appointment) Confirm() error {
	if a.Status != StatusPending {
		return ErrNotConfirmable
	}
	a.Status = StatusConfirmed
	return nil
}

// Cancel moves an active appointment to CANCELLED, recording the reason and
// the cancellation instant. The cancellation-window rule is enforced by the
// caller before this transition.
func (a *Appointment) Cancel(reason string, now time.Time) error {
	if !a.CanBeCancelled() {
		return ErrNotCancellable
	}
	a.Status = StatusCancelled
	if reason != "" {
		a.CancellationReason = &reason
	}
	a.CancelledAt = &now
	return nil
}

// Complete closes an active appointment as performed.
func (a *Appointment) Complete() error {
	if !a.IsActive() {
		return ErrNotActive
	}
	a.Status = StatusCompleted
	return nil
}

// MarkNoShow closes an active appointment as missed by the client.
func (a *Appointment) MarkNoShow() error {
	if !a.IsActive() {
		return ErrNotActive
	}
	a.Status = StatusNoShow
	return nil
}

// ParseAppointmentStatus validates a wire-format status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return AppointmentStatus(s), nil
	}
	return "", errors.New("domain: unknown appointment status " + s)
}
