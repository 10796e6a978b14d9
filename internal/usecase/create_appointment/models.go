package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// Request carries a booking attempt.
type Request struct {
	UserID    uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time // date component only
	StartTime types.TimeString
	Notes     *string
}

// Response is the created appointment.
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
