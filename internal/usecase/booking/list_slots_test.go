package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
)

// 2026-09-07 is a Monday.
const slotsDate = "2026-09-07"

func slotsInput() ListSlotsInput {
	return ListSlotsInput{
		BusinessID: 1,
		ServiceID:  2,
		Date:       slotsDate,
	}
}

func TestListSlots_MarksBusyIntervals(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	uc := NewListSlots(repo, cache)

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("ListDayBookings", mock.Anything, uint(1), slotsDate, (*uint)(nil)).
		Return([]models.Booking{
			{Time: "10:00", EndTime: "10:45"},
		}, nil).
		Once()

	slots, err := uc.Execute(context.Background(), slotsInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, slots)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	// 45 minute service against a 10:00-10:45 booking.
	assert.True(t, byTime["09:00"])
	assert.False(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"])

	repo.AssertExpectations(t)
}

func TestListSlots_SecondCallHitsCache(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	uc := NewListSlots(repo, cache)

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("ListDayBookings", mock.Anything, uint(1), slotsDate, (*uint)(nil)).
		Return([]models.Booking{}, nil).
		Once()

	first, err := uc.Execute(context.Background(), slotsInput())
	assert.NoError(t, err)

	second, err := uc.Execute(context.Background(), slotsInput())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "ListDayBookings", 1)
}

func TestListSlots_ClosedDay(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	biz := approvedBusiness()
	biz.ClosedDays = models.IntList{1} // Monday

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(biz, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)

	slots, err := uc.Execute(context.Background(), slotsInput())
	assert.NoError(t, err)
	assert.Empty(t, slots)

	repo.AssertNotCalled(t, "ListDayBookings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListSlots_InvalidDate(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	input := slotsInput()
	input.Date = "07/09/2026"

	_, err := uc.Execute(context.Background(), input)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListSlots_BusinessNotFound(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), slotsInput())
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestListSlots_InactiveService(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	svc := activeService()
	svc.IsActive = false

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(svc, nil)

	_, err := uc.Execute(context.Background(), slotsInput())
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))
}

func TestListSlots_StaffScoped(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	staffID := uint(5)
	st := &models.Staff{ID: 5, BusinessID: 1, IsActive: true, CanAcceptBookings: true}

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(5)).Return(st, nil)
	repo.On("ListDayBookings", mock.Anything, uint(1), slotsDate, &staffID).
		Return([]models.Booking{}, nil)

	input := slotsInput()
	input.StaffID = &staffID

	slots, err := uc.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, slots)

	for _, s := range slots {
		assert.True(t, s.Available)
	}

	repo.AssertExpectations(t)
}

func TestListSlots_SlotsStayInsideOperatingHours(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListSlots(repo, newFakeCache())

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("ListDayBookings", mock.Anything, uint(1), slotsDate, (*uint)(nil)).
		Return([]models.Booking{}, nil)

	slots, err := uc.Execute(context.Background(), slotsInput())
	assert.NoError(t, err)

	for _, s := range slots {
		start, err := domain.ParseHM(s.Time)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, start, 9*60)
		// A 45 minute service must end by 21:00.
		assert.LessOrEqual(t, start+45, 21*60)
	}
}
