package booking

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/salonora/salon-booking/internal/audit"
	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/models"
)

// mockRepo is a mock implementation of domain.Repository.
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockRepo) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, businessID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockRepo) GetStaff(ctx context.Context, businessID, staffID uint) (*models.Staff, error) {
	args := m.Called(ctx, businessID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *mockRepo) ListDayBookings(ctx context.Context, businessID uint, date string, staffID *uint) ([]models.Booking, error) {
	args := m.Called(ctx, businessID, date, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) CreateBookingIfFree(ctx context.Context, b *models.Booking, changedBy *uint) error {
	args := m.Called(ctx, b, changedBy)
	return args.Error(0)
}

func (m *mockRepo) GetBookingForCustomer(ctx context.Context, bookingID, customerID uint) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) GetBookingForBusiness(ctx context.Context, bookingID, businessID uint) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) UpdateBookingWithHistory(ctx context.Context, b *models.Booking, h *models.BookingHistory, bumpStats bool) error {
	args := m.Called(ctx, b, h, bumpStats)
	return args.Error(0)
}

var _ domain.Repository = (*mockRepo)(nil)

// fakeCache is an in-memory stand-in for the redis slot cache.
type fakeCache struct {
	entries     map[string][]domain.Slot
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.Slot{}}
}

func fakeKey(businessID, serviceID uint, staffID *uint, date string) string {
	staff := "any"
	if staffID != nil {
		staff = fmt.Sprintf("%d", *staffID)
	}
	return fmt.Sprintf("%d:%d:%s:%s", businessID, serviceID, staff, date)
}

func (f *fakeCache) Get(ctx context.Context, businessID, serviceID uint, staffID *uint, date string) ([]domain.Slot, bool) {
	slots, ok := f.entries[fakeKey(businessID, serviceID, staffID, date)]
	return slots, ok
}

func (f *fakeCache) Set(ctx context.Context, businessID, serviceID uint, staffID *uint, date string, slots []domain.Slot) error {
	f.entries[fakeKey(businessID, serviceID, staffID, date)] = slots
	return nil
}

func (f *fakeCache) InvalidateDay(ctx context.Context, businessID uint, date string) error {
	f.invalidated = append(f.invalidated, fmt.Sprintf("%d:%s", businessID, date))
	return nil
}

var _ SlotCache = (*fakeCache)(nil)

// fakeAuditor records dispatched events.
type fakeAuditor struct {
	events []audit.Event
}

func (f *fakeAuditor) Dispatch(ev audit.Event) {
	f.events = append(f.events, ev)
}

var _ Auditor = (*fakeAuditor)(nil)
