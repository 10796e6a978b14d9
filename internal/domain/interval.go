package domain

import "time"

// TimeInterval is a half-open time window [Start, End). It is the single
// interval representation used for working-hour windows, breaks, appointment
// occupancy and candidate slots, so the overlap rule lives in exactly one
// place.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds the interval; callers guarantee start < end.
func NewTimeInterval(start, end time.Time) TimeInterval {
	return TimeInterval{Start: start, End: end}
}

// IsValid reports whether Start precedes End.
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether the two half-open intervals intersect. An interval
// ending exactly when the other begins does not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Duration returns End - Start.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
