package create_appointment

import "errors"

var (
	// ErrServiceNotFound is returned when the requested service does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound is returned when the requested staff member does not exist.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrServiceInactive is returned when the service is no longer bookable.
	ErrServiceInactive = errors.New("service is not bookable")

	// ErrStaffInactive is returned when the staff member no longer takes bookings.
	ErrStaffInactive = errors.New("staff member is not bookable")

	// ErrBookingTooSoon is returned when the start violates the minimum
	// advance window.
	ErrBookingTooSoon = errors.New("booking start is too soon")

	// ErrStaffUnavailable is returned when a holiday or a day off blocks the date.
	ErrStaffUnavailable = errors.New("staff member is unavailable on this date")

	// ErrOutsideWorkingHours is returned when the window does not fit the
	// working hours or overlaps the break.
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")

	// ErrSlotConflict is returned when an active appointment already occupies
	// an overlapping window.
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected failures inside the use case.
	ErrInternal = errors.New("usecase: internal error")
)
