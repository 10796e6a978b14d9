package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// ErrCacheMiss is returned when no entry exists for the key.
var ErrCacheMiss = errors.New("slots.cache: miss")

// Cache stores computed slot grids in redis, keyed by staff, date and service.
// Entries expire on their own TTL and are additionally evicted whenever a
// write touches the staff member's day.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(staffID uuid.UUID, date time.Time, serviceID uuid.UUID) string {
	return fmt.Sprintf("slots:%s:%s:%s", staffID, date.Format(domain.DateFormat), serviceID)
}

// Get returns the cached grid or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID) ([]domain.Slot, error) {
	raw, err := c.client.Get(ctx, key(staffID, date, serviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("slots.cache: get: %w", err)
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("slots.cache: decode: %w", err)
	}
	return slots, nil
}

// Set stores the grid with the configured TTL.
func (c *Cache) Set(ctx context.Context, staffID uuid.UUID, date time.Time, serviceID uuid.UUID, slots []domain.Slot) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots.cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, key(staffID, date, serviceID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("slots.cache: set: %w", err)
	}
	return nil
}

// Invalidate drops every cached grid for the staff member's day, across all
// services.
func (c *Cache) Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error {
	pattern := fmt.Sprintf("slots:%s:%s:*", staffID, date.Format(domain.DateFormat))

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("slots.cache: scan %s: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("slots.cache: del: %w", err)
	}
	return nil
}
