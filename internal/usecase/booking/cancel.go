package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/salonora/salon-booking/internal/audit"
	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
)

// ===============================
// Use Case: Cancel Booking
// ===============================

type CancelBookingInput struct {
	CustomerID uint
	BookingID  uint
	Reason     string
}

type CancelBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit Auditor
}

func NewCancelBooking(repo domain.Repository, cache SlotCache, auditor Auditor) *CancelBooking {
	return &CancelBooking{repo: repo, cache: cache, audit: auditor}
}

func (uc *CancelBooking) Execute(ctx context.Context, input CancelBookingInput) (*models.Booking, error) {
	b, err := uc.repo.GetBookingForCustomer(ctx, input.BookingID, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrField("booking", "not_found")
		}
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, b.BusinessID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := domain.Cancel(b, biz.CancellationDeadlineHours, models.CancelledByCustomer, input.Reason, now); err != nil {
		return nil, err
	}

	history := models.BookingHistory{
		BookingID:   b.ID,
		Status:      b.Status,
		Notes:       input.Reason,
		ChangedByID: &input.CustomerID,
	}
	if err := uc.repo.UpdateBookingWithHistory(ctx, b, &history, false); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.InvalidateDay(ctx, b.BusinessID, b.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: b.BusinessID,
			UserID:     &input.CustomerID,
			Action:     "booking.cancelled",
			Entity:     "booking",
			EntityID:   &b.ID,
			Metadata: map[string]any{
				"cancelled_by": b.CancelledBy,
				"reason":       input.Reason,
			},
		})
	}

	return b, nil
}
