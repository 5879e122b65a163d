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
	"github.com/salonora/salon-booking/internal/timezone"
)

func approvedBusiness() *models.Business {
	return &models.Business{
		ID:                        1,
		OpensAt:                   "09:00",
		ClosesAt:                  "21:00",
		SlotDurationMinutes:       30,
		BookingAdvanceDays:        30,
		CancellationDeadlineHours: 24,
		AllowOnlineBooking:        true,
		IsActive:                  true,
		Status:                    models.BusinessStatusApproved,
	}
}

func activeService() *models.Service {
	return &models.Service{
		ID:              2,
		BusinessID:      1,
		Name:            "Haircut",
		DurationMinutes: 45,
		Price:           100,
		IsActive:        true,
	}
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func createInput(date string) CreateBookingInput {
	return CreateBookingInput{
		CustomerID: 9,
		BusinessID: 1,
		ServiceID:  2,
		Date:       date,
		Time:       "10:00",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	auditor := &fakeAuditor{}
	uc := NewCreateBooking(repo, cache, auditor)

	date := futureDate(2)

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("CreateBookingIfFree", mock.Anything, mock.AnythingOfType("*models.Booking"), mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Booking).ID = 7
		}).
		Return(nil)

	b, err := uc.Execute(context.Background(), createInput(date))
	assert.NoError(t, err)

	assert.Equal(t, uint(7), b.ID)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, "10:45", b.EndTime)
	assert.Equal(t, 45, b.DurationMinutes)
	assert.Equal(t, 100.0, b.ServicePrice)
	assert.Equal(t, 100.0, b.FinalPrice)
	assert.Nil(t, b.ConfirmedAt)

	assert.Equal(t, []string{"1:" + date}, cache.invalidated)
	assert.Len(t, auditor.events, 1)
	assert.Equal(t, "booking.created", auditor.events[0].Action)

	repo.AssertExpectations(t)
}

func TestCreateBooking_AutoConfirm(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	biz := approvedBusiness()
	biz.AutoConfirmBooking = true

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(biz, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("CreateBookingIfFree", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), createInput(futureDate(2)))
	assert.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.NotNil(t, b.ConfirmedAt)
}

func TestCreateBooking_BookingDisabled(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	biz := approvedBusiness()
	biz.AllowOnlineBooking = false

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(biz, nil)

	_, err := uc.Execute(context.Background(), createInput(futureDate(2)))
	assert.True(t, httperr.IsBusiness(err, "booking_disabled"))

	repo.AssertNotCalled(t, "CreateBookingIfFree", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BusinessNotFound(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), createInput(futureDate(2)))
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestCreateBooking_PastDate(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)

	_, err := uc.Execute(context.Background(), createInput(futureDate(-1)))
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBooking_BeyondAdvanceWindow(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)

	_, err := uc.Execute(context.Background(), createInput(futureDate(31)))
	assert.True(t, httperr.IsBusiness(err, "too_far_ahead"))
}

func TestCreateBooking_ClosedDay(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	date := futureDate(2)
	weekday := int(timezone.Now().AddDate(0, 0, 2).Weekday())

	biz := approvedBusiness()
	biz.ClosedDays = models.IntList{weekday}

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(biz, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)

	_, err := uc.Execute(context.Background(), createInput(date))
	assert.True(t, httperr.IsBusiness(err, "business_closed"))
}

func TestCreateBooking_InactiveService(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	svc := activeService()
	svc.IsActive = false

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(svc, nil)

	_, err := uc.Execute(context.Background(), createInput(futureDate(2)))
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))
}

func TestCreateBooking_StaffCannotAcceptBookings(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	staffID := uint(5)
	st := &models.Staff{ID: 5, BusinessID: 1, IsActive: true, CanAcceptBookings: false}

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(5)).Return(st, nil)

	input := createInput(futureDate(2))
	input.StaffID = &staffID

	_, err := uc.Execute(context.Background(), input)
	assert.True(t, httperr.IsBusiness(err, "invalid_staff"))
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	repo := &mockRepo{}
	cache := newFakeCache()
	auditor := &fakeAuditor{}
	uc := NewCreateBooking(repo, cache, auditor)

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)
	repo.On("CreateBookingIfFree", mock.Anything, mock.Anything, mock.Anything).
		Return(httperr.ErrField("time", "slot_conflict"))

	_, err := uc.Execute(context.Background(), createInput(futureDate(2)))
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	assert.Empty(t, cache.invalidated)
	assert.Empty(t, auditor.events)
}

func TestCreateBooking_InvalidTime(t *testing.T) {
	repo := &mockRepo{}
	uc := NewCreateBooking(repo, newFakeCache(), &fakeAuditor{})

	repo.On("GetBusinessByID", mock.Anything, uint(1)).Return(approvedBusiness(), nil)
	repo.On("GetService", mock.Anything, uint(1), uint(2)).Return(activeService(), nil)

	input := createInput(futureDate(2))
	input.Time = "10h30"

	_, err := uc.Execute(context.Background(), input)
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}
