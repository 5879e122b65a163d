package booking

import (
	"time"

	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StartDateTime combines the booking's date and start time in loc.
func StartDateTime(b *models.Booking, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
}

// CanCancel enforces the cancellation rules: not already cancelled, not
// in a terminal state, and still before the business deadline
// (start - deadlineHours).
func CanCancel(b *models.Booking, deadlineHours int, now time.Time) error {
	if b.IsCancelled || Status(b.Status).Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}

	start, err := StartDateTime(b, now.Location())
	if err != nil {
		return httperr.ErrBusiness("invalid_booking_datetime")
	}

	deadline := start.Add(-time.Duration(deadlineHours) * time.Hour)
	if !now.Before(deadline) {
		return httperr.ErrBusiness("cancellation_deadline_passed")
	}
	return nil
}

func Cancel(b *models.Booking, deadlineHours int, actor, reason string, now time.Time) error {
	if err := CanCancel(b, deadlineHours, now); err != nil {
		return err
	}

	b.IsCancelled = true
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancelledBy = actor
	b.CancellationReason = reason
	return nil
}

// Transition applies one step of the status machine and stamps the
// matching timestamp fields.
func Transition(b *models.Booking, to Status, now time.Time) error {
	if err := ValidateTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)

	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.IsCancelled = true
		b.CancelledAt = &now
		if b.CancelledBy == "" {
			b.CancelledBy = models.CancelledByBusiness
		}
	}
	return nil
}
