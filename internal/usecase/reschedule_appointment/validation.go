package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

func validateRequest(req *Request) error {
	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId must not be empty when set", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateAdvance(date time.Time, start types.TimeString, now time.Time, minAdvanceHours int) error {
	startsAt, err := start.At(date)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	cutoff := now.Add(time.Duration(minAdvanceHours) * time.Hour)
	if !startsAt.After(cutoff) {
		return fmt.Errorf("%w: bookings require %d hours notice", ErrBookingTooSoon, minAdvanceHours)
	}
	return nil
}

func validateWithinWorkingHours(wh *domain.WorkingHours, date time.Time, start, end types.TimeString) error {
	s, err := start.At(date)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	e, err := end.At(date)
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	open, err := wh.StartTime.At(date)
	if err != nil {
		return fmt.Errorf("%w: working hours: %v", ErrInternal, err)
	}
	close, err := wh.EndTime.At(date)
	if err != nil {
		return fmt.Errorf("%w: working hours: %v", ErrInternal, err)
	}

	// TIME arithmetic wraps past midnight; an end at or before the start
	// cannot fit any working day.
	if !e.After(s) {
		return ErrOutsideWorkingHours
	}

	if s.Before(open) || e.After(close) {
		return ErrOutsideWorkingHours
	}

	if wh.HasBreak() {
		bs, err := wh.BreakStart.At(date)
		if err != nil {
			return fmt.Errorf("%w: working hours: %v", ErrInternal, err)
		}
		be, err := wh.BreakEnd.At(date)
		if err != nil {
			return fmt.Errorf("%w: working hours: %v", ErrInternal, err)
		}
		if !s.Before(bs) && s.Before(be) {
			return ErrOutsideWorkingHours
		}
	}

	return nil
}

func isBlockedByHoliday(holidays []*domain.Holiday, staffID uuid.UUID, date time.Time) bool {
	for _, h := range holidays {
		if h.Scope.AppliesTo(staffID) && h.Covers(date) {
			return true
		}
	}
	return false
}
