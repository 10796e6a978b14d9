package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrUnauthorized is returned when the requester neither owns the
	// appointment nor has the admin role.
	ErrUnauthorized = errors.New("access denied")

	// ErrNotReschedulable is returned when the appointment status forbids
	// moving it.
	ErrNotReschedulable = errors.New("appointment cannot be rescheduled")

	// ErrStaffNotFound is returned when the target staff member does not exist.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffInactive is returned when the target staff member no longer
	// takes bookings.
	ErrStaffInactive = errors.New("staff member is not bookable")

	// ErrBookingTooSoon is returned when the new start violates the minimum
	// advance window.
	ErrBookingTooSoon = errors.New("booking start is too soon")

	// ErrStaffUnavailable is returned when a holiday or a day off blocks the
	// target date.
	ErrStaffUnavailable = errors.New("staff member is unavailable on this date")

	// ErrOutsideWorkingHours is returned when the new window does not fit the
	// working hours or overlaps the break.
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")

	// ErrSlotConflict is returned when another active appointment occupies an
	// overlapping window.
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected failures inside the use case.
	ErrInternal = errors.New("usecase: internal error")
)
