package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// Request moves an appointment to a new window, optionally with a different
// staff member. A nil StaffID keeps the current one.
type Request struct {
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	IsAdmin       bool

	StaffID   *uuid.UUID
	Date      time.Time // date component only
	StartTime types.TimeString
}

// Response is the moved appointment.
type Response struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string

	ServiceName            string
	ServicePriceCents      int
	ServiceDurationMinutes int

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
