package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no row matches the lookup.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateStart is returned when the (staff, date, start_time)
	// uniqueness backstop rejects an insert or update.
	ErrDuplicateStart = errors.New("appointment.repository: staff already booked at this start time")

	// ErrBuildQuery is returned when a SQL statement could not be built.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement failed to execute.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
