package domain

// Default booking tunables, used when the [booking] config section is absent.
const (
	DefaultSlotIntervalMinutes = 30
	DefaultMinAdvanceHours     = 1
	DefaultCancellationHours   = 24
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MaxNotesLength         = 1000
	MaxCancelReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that occupy a time slot. Appointments in any
// other status never block availability.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
