package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a computed candidate booking window. Slots are never persisted;
// they exist only inside an availability response.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	StaffID   uuid.UUID
	Available bool
}

// Interval returns the slot's occupied window.
func (s Slot) Interval() TimeInterval {
	return NewTimeInterval(s.StartTime, s.EndTime)
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
