package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHolidayCoversAbsoluteRange(t *testing.T) {
	h := &Holiday{
		Scope:     GlobalScope(),
		Name:      "Renovation",
		StartDate: date(2026, time.April, 10),
		EndDate:   date(2026, time.April, 12),
	}

	assert.False(t, h.Covers(date(2026, time.April, 9)))
	assert.True(t, h.Covers(date(2026, time.April, 10)))
	assert.True(t, h.Covers(date(2026, time.April, 11)))
	assert.True(t, h.Covers(date(2026, time.April, 12)), "end date is inclusive")
	assert.False(t, h.Covers(date(2026, time.April, 13)))
	assert.False(t, h.Covers(date(2027, time.April, 11)), "non-recurring does not repeat")
}

func TestHolidayCoversRecurring(t *testing.T) {
	h := &Holiday{
		Scope:     GlobalScope(),
		Name:      "Founders Day",
		StartDate: date(2020, time.May, 1),
		EndDate:   date(2020, time.May, 2),
		Recurring: true,
	}

	assert.True(t, h.Covers(date(2026, time.May, 1)), "stored year is ignored")
	assert.True(t, h.Covers(date(2031, time.May, 2)))
	assert.False(t, h.Covers(date(2026, time.May, 3)))
	assert.False(t, h.Covers(date(2026, time.April, 30)))
}

func TestHolidayCoversRecurringYearWrap(t *testing.T) {
	h := &Holiday{
		Scope:     GlobalScope(),
		Name:      "Winter break",
		StartDate: date(2020, time.December, 26),
		EndDate:   date(2021, time.January, 2),
		Recurring: true,
	}

	assert.True(t, h.Covers(date(2026, time.December, 26)))
	assert.True(t, h.Covers(date(2026, time.December, 31)))
	assert.True(t, h.Covers(date(2026, time.January, 1)))
	assert.True(t, h.Covers(date(2026, time.January, 2)))
	assert.False(t, h.Covers(date(2026, time.January, 3)))
	assert.False(t, h.Covers(date(2026, time.December, 25)))
	assert.False(t, h.Covers(date(2026, time.June, 15)))
}

func TestHolidayScopeAppliesTo(t *testing.T) {
	staffA := uuid.New()
	staffB := uuid.New()

	assert.True(t, GlobalScope().AppliesTo(staffA))
	assert.True(t, GlobalScope().AppliesTo(staffB))

	personal := StaffScope(staffA)
	assert.True(t, personal.AppliesTo(staffA))
	assert.False(t, personal.AppliesTo(staffB))

	id, ok := personal.StaffID()
	assert.True(t, ok)
	assert.Equal(t, staffA, id)

	_, ok = GlobalScope().StaffID()
	assert.False(t, ok)
	assert.True(t, GlobalScope().IsGlobal())
	assert.False(t, personal.IsGlobal())
}
