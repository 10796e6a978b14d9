package workinghours

import "errors"

var (
	// ErrWorkingHoursNotFound is returned when the staff member has no
	// schedule row for the requested weekday.
	ErrWorkingHoursNotFound = errors.New("workinghours.repository: working hours not found")

	// ErrBuildQuery is returned when a SQL statement could not be built.
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
