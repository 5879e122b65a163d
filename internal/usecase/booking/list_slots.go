package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
)

// ===============================
// Use Case: List Slots
// ===============================

type ListSlotsInput struct {
	BusinessID uint
	ServiceID  uint
	StaffID    *uint
	Date       string // "2006-01-02"
}

type ListSlots struct {
	repo  domain.Repository
	cache SlotCache
}

func NewListSlots(repo domain.Repository, cache SlotCache) *ListSlots {
	return &ListSlots{repo: repo, cache: cache}
}

func (uc *ListSlots) Execute(ctx context.Context, input ListSlotsInput) ([]domain.Slot, error) {
	day, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, httperr.ErrField("date", "invalid_date")
	}

	biz, err := uc.repo.GetBusinessByID(ctx, input.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrField("business", "not_found")
		}
		return nil, err
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

	// Closed day: no slots at all, not an error.
	if biz.ClosedDays.Contains(int(day.Weekday())) {
		return []domain.Slot{}, nil
	}

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, biz.ID, svc.ID, input.StaffID, input.Date); ok {
			return slots, nil
		}
	}

	bookings, err := uc.repo.ListDayBookings(ctx, biz.ID, input.Date, input.StaffID)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Window, 0, len(bookings))
	for _, b := range bookings {
		start, err := domain.ParseHM(b.Time)
		if err != nil {
			continue
		}
		end, err := domain.ParseHM(b.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, domain.Window{Start: start, End: end})
	}

	slots, err := domain.BuildSlots(
		biz.OpensAt,
		biz.ClosesAt,
		biz.SlotDurationMinutes,
		svc.DurationMinutes,
		busy,
	)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, biz.ID, svc.ID, input.StaffID, input.Date, slots)
	}

	return slots, nil
}
