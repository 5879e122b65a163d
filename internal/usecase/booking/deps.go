package booking

import (
	"context"

	"github.com/salonora/salon-booking/internal/audit"
	domain "github.com/salonora/salon-booking/internal/domain/booking"
)

// SlotCache is the slice of the cache layer the booking use cases need.
type SlotCache interface {
	Get(
		ctx context.Context,
		businessID, serviceID uint,
		staffID *uint,
		date string,
	) ([]domain.Slot, bool)

	Set(
		ctx context.Context,
		businessID, serviceID uint,
		staffID *uint,
		date string,
		slots []domain.Slot,
	) error

	InvalidateDay(ctx context.Context, businessID uint, date string) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}
