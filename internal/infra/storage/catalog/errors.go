package catalog

import "errors"

var (
	// ErrServiceNotFound is returned when no service matches the lookup.
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrStaffNotFound is returned when no staff member matches the lookup.
	ErrStaffNotFound = errors.New("catalog.repository: staff member not found")

	// ErrBuildQuery is returned when a SQL statement could not be built.
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement failed to execute.
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
