package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
)

func TestCancelBooking_Success(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	auditor := &fakeAuditor{}
	uc := NewCancelBooking(repo, cache, auditor)

	b := &models.Booking{
		ID:         7,
		CustomerID: 9,
		BusinessID: 1,
		Date:       futureDate(5),
		Time:       "10:00",
		Status:     string(domain.StatusConfirmed),
	}

	var history *models.BookingHistory
	repo.On("GetBookingForCustomer", mock.Anything, uint(7), uint(9)).Return(b, nil)
	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("UpdateBookingWithHistory", mock.Anything, b, mock.AnythingOfType("*models.BookingHistory"), false).
		Run(func(args mock.Arguments) {
			history = args.Get(2).(*models.BookingHistory)
		}).
		Return(nil)

	got, err := uc.Execute(context.Background(), CancelBookingInput{
		CustomerID: 9,
		BookingID:  7,
		Reason:     "found a closer salon",
	})
	assert.NoError(t, err)

	assert.True(t, got.IsCancelled)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.Equal(t, models.CancelledByCustomer, got.CancelledBy)
	assert.Equal(t, "found a closer salon", got.CancellationReason)

	assert.Equal(t, string(domain.StatusCancelled), history.Status)
	assert.Equal(t, "found a closer salon", history.Notes)

	assert.Equal(t, []string{"1:" + b.Date}, cache.invalidated)
	assert.Len(t, auditor.events, 1)
	assert.Equal(t, "booking.cancelled", auditor.events[0].Action)

	repo.AssertExpectations(t)
}

func TestCancelBooking_DeadlinePassed(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	uc := NewCancelBooking(repo, cache, &fakeAuditor{})

	// Starts in two hours; the deadline is 24 hours.
	start := timezone.Now().Add(2 * time.Hour)
	b := &models.Booking{
		ID:         7,
		CustomerID: 9,
		BusinessID: 1,
		Date:       start.Format("2006-01-02"),
		Time:       start.Format("15:04"),
		Status:     string(domain.StatusConfirmed),
	}

	repo.On("GetBookingForCustomer", mock.Anything, uint(7), uint(9)).Return(b, nil)
	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)

	_, err := uc.Execute(context.Background(), CancelBookingInput{CustomerID: 9, BookingID: 7})
	assert.True(t, httperr.IsBusiness(err, "cancellation_deadline_passed"))

	repo.AssertNotCalled(t, "UpdateBookingWithHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, cache.invalidated)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCancelBooking(repo, newFakeCache(), &fakeAuditor{})

	b := &models.Booking{
		ID:          7,
		CustomerID:  9,
		BusinessID:  1,
		Date:        futureDate(5),
		Time:        "10:00",
		Status:      string(domain.StatusCancelled),
		IsCancelled: true,
	}

	repo.On("GetBookingForCustomer", mock.Anything, uint(7), uint(9)).Return(b, nil)
	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)

	_, err := uc.Execute(context.Background(), CancelBookingInput{CustomerID: 9, BookingID: 7})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBooking_NotFound(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCancelBooking(repo, newFakeCache(), &fakeAuditor{})

	repo.On("GetBookingForCustomer", mock.Anything, uint(7), uint(9)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), CancelBookingInput{CustomerID: 9, BookingID: 7})
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}
