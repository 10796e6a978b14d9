package get_available_slots

import "errors"

var (
	// ErrServiceNotFound is returned when the requested service does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound is returned when the requested staff member does not exist.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrServiceInactive is returned when the service is no longer bookable.
	ErrServiceInactive = errors.New("service is not bookable")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected failures inside the use case.
	ErrInternal = errors.New("usecase: internal error")
)
