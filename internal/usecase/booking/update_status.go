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
// Use Case: Update Booking Status
// ===============================

type UpdateStatusInput struct {
	BusinessID uint
	UserID     uint
	BookingID  uint
	Status     string
	Notes      string
}

type UpdateStatus struct {
	repo  domain.Repository
	cache SlotCache
	audit Auditor
}

func NewUpdateStatus(repo domain.Repository, cache SlotCache, auditor Auditor) *UpdateStatus {
	return &UpdateStatus{repo: repo, cache: cache, audit: auditor}
}

func (uc *UpdateStatus) Execute(ctx context.Context, input UpdateStatusInput) (*models.Booking, error) {
	to := domain.Status(input.Status)
	if !to.Valid() {
		return nil, httperr.ErrField("status", "invalid_status")
	}

	b, err := uc.repo.GetBookingForBusiness(ctx, input.BookingID, input.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrField("booking", "not_found")
		}
		return nil, err
	}

	from := b.Status

	if to == domain.StatusCancelled {
		b.CancelledBy = models.CancelledByBusiness
		b.CancellationReason = input.Notes
	}

	now := timezone.Now()
	if err := domain.Transition(b, to, now); err != nil {
		return nil, err
	}

	history := models.BookingHistory{
		BookingID:   b.ID,
		Status:      b.Status,
		Notes:       input.Notes,
		ChangedByID: &input.UserID,
	}

	// Completion bumps the stats inside the same transaction as the
	// status change and its history entry.
	bumpStats := to == domain.StatusCompleted
	if err := uc.repo.UpdateBookingWithHistory(ctx, b, &history, bumpStats); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.InvalidateDay(ctx, b.BusinessID, b.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: b.BusinessID,
			UserID:     &input.UserID,
			Action:     "booking.status_changed",
			Entity:     "booking",
			EntityID:   &b.ID,
			Metadata: map[string]any{
				"from": from,
				"to":   string(to),
			},
		})
	}

	return b, nil
}
