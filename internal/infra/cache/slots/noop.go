package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// Store is the cache surface the wiring layer chooses an implementation for.
type Store interface {
	Get(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID) ([]domain.Slot, error)
	Set(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID, slots []domain.Slot) error
	Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error
}

// Noop is used when redis is not configured; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, time.Time, uuid.UUID) ([]domain.Slot, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, uuid.UUID, time.Time, uuid.UUID, []domain.Slot) error {
	return nil
}

func (Noop) Invalidate(context.Context, uuid.UUID, time.Time) error {
	return nil
}
