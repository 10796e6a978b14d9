package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable salon treatment. Its duration drives slot length;
// everything else is catalog data.
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	PriceCents      int
	Active          bool
	DisplayOrder    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the service length as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
