package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// WorkingHours is one staff member's schedule for one weekday. There is at
// most one row per (staff, weekday); an absent row means a day off. Break
// bounds are optional and, when present, lie within the working window
// (validated by scheduling administration, not here).
type WorkingHours struct {
	ID      uuid.UUID
	StaffID uuid.UUID
	Weekday int // ISO: 1 = Monday .. 7 = Sunday

	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart types.TimeString
	BreakEnd   types.TimeString

	CreatedAt time.Time
}

// HasBreak reports whether both break bounds are set.
func (w *WorkingHours) HasBreak() bool {
	return !w.BreakStart.IsZero() && !w.BreakEnd.IsZero()
}

// ISOWeekday converts a date to the 1=Monday..7=Sunday convention used by
// working-hours rows.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
