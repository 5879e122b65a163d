package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salonora/salon-booking/internal/config"
	domain "github.com/salonora/salon-booking/internal/domain/booking"
)

// SlotCache keeps computed slot lists for a short TTL. Every booking
// mutation for a business/date must call InvalidateDay, otherwise the
// availability flags go stale.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(cfg *config.Config, ttl time.Duration) *SlotCache {
	return &SlotCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
		ttl: ttl,
	}
}

func (c *SlotCache) Get(
	ctx context.Context,
	businessID, serviceID uint,
	staffID *uint,
	date string,
) ([]domain.Slot, bool) {

	data, err := c.client.Get(ctx, slotsKey(businessID, serviceID, staffID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(
	ctx context.Context,
	businessID, serviceID uint,
	staffID *uint,
	date string,
	slots []domain.Slot,
) error {

	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, slotsKey(businessID, serviceID, staffID, date), payload, c.ttl).Err()
}

// InvalidateDay drops every cached slot list for the business on the
// given date, across all services and staff.
func (c *SlotCache) InvalidateDay(ctx context.Context, businessID uint, date string) error {
	pattern := fmt.Sprintf("slots:%d:*:%s", businessID, date)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func slotsKey(businessID, serviceID uint, staffID *uint, date string) string {
	staff := "any"
	if staffID != nil {
		staff = fmt.Sprintf("%d", *staffID)
	}
	return fmt.Sprintf("slots:%d:%d:%s:%s", businessID, serviceID, staff, date)
}
