package domain

import (
	"time"

	"github.com/google/uuid"
)

// StaffMember is a salon employee appointments can be booked with.
type StaffMember struct {
	ID        uuid.UUID
	FullName  string
	Specialty *string
	Active    bool

	CreatedAt time.Time
}
