package holiday

import "errors"

var (
	// ErrBuildQuery is returned when a SQL statement could not be built.
	ErrBuildQuery = errors.New("holiday.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement failed to execute.
	ErrExecQuery = errors.New("holiday.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("holiday.repository: failed to scan row")
)
