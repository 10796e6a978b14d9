package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// Request identifies whose availability to compute.
type Request struct {
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time // date component only
}

// Config carries the booking tunables the computation depends on.
type Config struct {
	SlotIntervalMinutes int
	MinAdvanceHours     int
}

// Response is the computed grid. Slots carries only bookable windows, ordered
// by start time.
type Response struct {
	Date      time.Time
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Slots     []domain.Slot
}
