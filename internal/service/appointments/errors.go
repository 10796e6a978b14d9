package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied is returned when the requester neither owns the
	// appointment nor has the admin role.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the appointment status forbids
	// cancellation.
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCancellationTooLate is returned when the cancellation window has
	// already closed.
	ErrCancellationTooLate = errors.New("cancellation window has closed")

	// ErrCannotConfirm is returned when confirming a non-pending appointment.
	ErrCannotConfirm = errors.New("appointment cannot be confirmed")

	// ErrInvalidStatus is returned for an unknown or forbidden status value.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected failures inside the service.
	ErrInternal = errors.New("service: internal error")
)
