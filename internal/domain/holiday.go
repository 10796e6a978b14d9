package domain

import (
	"time"

	"github.com/google/uuid"
)

// HolidayScope says who a holiday applies to: the whole salon or a single
// staff member. The zero value is not meaningful; construct via GlobalScope
// or StaffScope.
type HolidayScope struct {
	staffID uuid.UUID
	global  bool
}

// GlobalScope marks a salon-wide closure.
func GlobalScope() HolidayScope {
	return HolidayScope{global: true}
}

// StaffScope marks personal leave for one staff member.
func StaffScope(staffID uuid.UUID) HolidayScope {
	return HolidayScope{staffID: staffID}
}

// IsGlobal reports whether the holiday closes the whole salon.
func (s HolidayScope) IsGlobal() bool { return s.global }

// StaffID returns the staff member the scope is bound to, if any.
func (s HolidayScope) StaffID() (uuid.UUID, bool) {
	if s.global {
		return uuid.Nil, false
	}
	return s.staffID, true
}

// AppliesTo reports whether the scope blocks the given staff member.
func (s HolidayScope) AppliesTo(staffID uuid.UUID) bool {
	return s.global || s.staffID == staffID
}

// Holiday is a closure or leave period over an inclusive date range.
// Recurring holidays repeat annually: only the month and day of the range
// bounds are meaningful, the stored year is ignored when matching.
type Holiday struct {
	ID        uuid.UUID
	Scope     HolidayScope
	Name      string
	StartDate time.Time // date component only
	EndDate   time.Time // inclusive
	Recurring bool

	CreatedAt time.Time
}

// Covers reports whether the holiday blocks the given date. Non-recurring
// holidays match on the absolute range. Recurring holidays project their
// month/day range onto the query year, including ranges that wrap the year
// end (e.g. Dec 26 through Jan 2).
func (h *Holiday) Covers(date time.Time) bool {
	d := truncateToDate(date)

	if !h.Recurring {
		return !d.Before(truncateToDate(h.StartDate)) && !d.After(truncateToDate(h.EndDate))
	}

	start := time.Date(d.Year(), h.StartDate.Month(), h.StartDate.Day(), 0, 0, 0, 0, d.Location())
	end := time.Date(d.Year(), h.EndDate.Month(), h.EndDate.Day(), 0, 0, 0, 0, d.Location())

	if end.Before(start) {
		// Range wraps the year boundary.
		return !d.Before(start) || !d.After(end)
	}
	return !d.Before(start) && !d.After(end)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
