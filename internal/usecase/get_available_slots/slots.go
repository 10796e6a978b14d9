package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// generateCandidateSlots builds the raw grid for one working day. Starts step
// through the working window with a fixed interval; a start is kept when the
// service fits before closing time (a slot may end exactly at close). A start
// inside [breakStart, breakEnd) is skipped without breaking the stepping
// rhythm; a slot that starts before the break and runs into it is still
// emitted.
func generateCandidateSlots(
	wh *domain.WorkingHours,
	date time.Time,
	serviceDurationMinutes int,
	slotIntervalMinutes int,
) ([]domain.Slot, error) {
	open, err := wh.StartTime.At(date)
	if err != nil {
		return nil, err
	}
	close, err := wh.EndTime.At(date)
	if err != nil {
		return nil, err
	}

	var breakStart, breakEnd time.Time
	hasBreak := wh.HasBreak()
	if hasBreak {
		breakStart, err = wh.BreakStart.At(date)
		if err != nil {
			return nil, err
		}
		breakEnd, err = wh.BreakEnd.At(date)
		if err != nil {
			return nil, err
		}
	}

	duration := time.Duration(serviceDurationMinutes) * time.Minute
	step := time.Duration(slotIntervalMinutes) * time.Minute

	slots := make([]domain.Slot, 0)
	for start := open; ; start = start.Add(step) {
		end := start.Add(duration)
		if end.After(close) {
			break
		}

		if hasBreak && !start.Before(breakStart) && start.Before(breakEnd) {
			continue
		}

		slots = append(slots, domain.Slot{
			StartTime: start,
			EndTime:   end,
			StaffID:   wh.StaffID,
			Available: true,
		})
	}

	return slots, nil
}

// markConflicts flips Available off for every slot that overlaps an active
// appointment. Back-to-back windows do not conflict.
func markConflicts(slots []domain.Slot, appointments []*domain.Appointment) ([]domain.Slot, error) {
	occupied := make([]domain.TimeInterval, 0, len(appointments))
	for _, ap := range appointments {
		if !ap.IsActive() {
			continue
		}
		iv, err := ap.Interval()
		if err != nil {
			return nil, err
		}
		occupied = append(occupied, iv)
	}

	for i := range slots {
		for _, iv := range occupied {
			if slots[i].Interval().Overlaps(iv) {
				slots[i].Available = false
				break
			}
		}
	}

	return slots, nil
}

// filterBookable keeps available slots starting strictly after the minimum
// advance cutoff. A slot starting exactly at the cutoff is excluded.
func filterBookable(slots []domain.Slot, now time.Time, minAdvanceHours int) []domain.Slot {
	cutoff := now.Add(time.Duration(minAdvanceHours) * time.Hour)

	bookable := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Available {
			continue
		}
		if !s.StartTime.After(cutoff) {
			continue
		}
		bookable = append(bookable, s)
	}
	return bookable
}

// isBlockedByHoliday reports whether any fetched holiday covers the date for
// this staff member.
func isBlockedByHoliday(holidays []*domain.Holiday, staffID uuid.UUID, date time.Time) bool {
	for _, h := range holidays {
		if h.Scope.AppliesTo(staffID) && h.Covers(date) {
			return true
		}
	}
	return false
}
