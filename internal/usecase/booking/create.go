package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salonora/salon-booking/internal/audit"
	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
)

// ===============================
// Use Case: Create Booking
// ===============================

type CreateBookingInput struct {
	CustomerID uint
	BusinessID uint
	ServiceID  uint
	StaffID    *uint
	Date       string // "2006-01-02"
	Time       string // "HH:MM"
	Notes      string
}

type CreateBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit Auditor
}

func NewCreateBooking(repo domain.Repository, cache SlotCache, auditor Auditor) *CreateBooking {
	return &CreateBooking{repo: repo, cache: cache, audit: auditor}
}

func (uc *CreateBooking) Execute(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	biz, err := uc.repo.GetBusinessByID(ctx, input.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrField("business", "not_found")
		}
		return nil, err
	}
	if !biz.Bookable() {
		return nil, httperr.ErrField("business", "booking_disabled")
	}

	svc, err := uc.repo.GetService(ctx, input.BusinessID, input.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrField("service", "invalid_service")
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, httperr.ErrField("service", "invalid_service")
	}

	if input.StaffID != nil {
		st, err := uc.repo.GetStaff(ctx, input.BusinessID, *input.StaffID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrField("staff", "invalid_staff")
			}
			return nil, err
		}
		if !st.IsActive || !st.CanAcceptBookings {
			return nil, httperr.ErrField("staff", "invalid_staff")
		}
	}

	day, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, httperr.ErrField("date", "invalid_date")
	}
	if biz.ClosedDays.Contains(int(day.Weekday())) {
		return nil, httperr.ErrField("date", "business_closed")
	}

	// Date strings compare lexically.
	today := timezone.Today()
	if input.Date < today {
		return nil, httperr.ErrField("date", "date_in_past")
	}
	maxDate := timezone.Now().AddDate(0, 0, biz.BookingAdvanceDays).Format("2006-01-02")
	if input.Date > maxDate {
		return nil, httperr.ErrField("date", "too_far_ahead")
	}

	start, err := domain.ParseHM(input.Time)
	if err != nil {
		return nil, httperr.ErrField("time", "invalid_time")
	}
	endTime := domain.FormatHM(start + svc.DurationMinutes)

	now := timezone.Now()
	status := domain.InitialStatus(biz.AutoConfirmBooking)

	b := models.Booking{
		Reference:       uuid.NewString(),
		CustomerID:      input.CustomerID,
		BusinessID:      biz.ID,
		ServiceID:       svc.ID,
		StaffID:         input.StaffID,
		Date:            input.Date,
		Time:            input.Time,
		EndTime:         endTime,
		DurationMinutes: svc.DurationMinutes,
		Status:          string(status),
		Notes:           input.Notes,
	}
	domain.SnapshotPrice(svc).Apply(&b)

	if status == domain.StatusConfirmed {
		b.ConfirmedAt = &now
	}

	if err := uc.repo.CreateBookingIfFree(ctx, &b, &input.CustomerID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.InvalidateDay(ctx, biz.ID, b.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: biz.ID,
			UserID:     &input.CustomerID,
			Action:     "booking.created",
			Entity:     "booking",
			EntityID:   &b.ID,
			Metadata: map[string]any{
				"date":   b.Date,
				"time":   b.Time,
				"status": b.Status,
			},
		})
	}

	return &b, nil
}
