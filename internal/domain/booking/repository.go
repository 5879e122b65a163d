package booking

import (
	"context"

	"github.com/salonora/salon-booking/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		businessID uint,
		staffID uint,
	) (*models.Staff, error)

	// -------- Availability --------

	// ListDayBookings returns the blocking bookings for a business on a
	// date: status pending or confirmed, not cancelled, optionally
	// narrowed to one staff member, ordered by start time.
	ListDayBookings(
		ctx context.Context,
		businessID uint,
		date string,
		staffID *uint,
	) ([]models.Booking, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree re-runs the overlap check and inserts the
	// booking plus its first history entry in one transaction. Creates
	// for the same business day are serialized with an advisory lock,
	// so two clients racing for a free interval cannot both pass the
	// check. Returns a slot_conflict field error when the interval is
	// taken.
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
		changedBy *uint,
	) error

	// -------- Booking (state change) --------
	GetBookingForCustomer(
		ctx context.Context,
		bookingID uint,
		customerID uint,
	) (*models.Booking, error)

	GetBookingForBusiness(
		ctx context.Context,
		bookingID uint,
		businessID uint,
	) (*models.Booking, error)

	// UpdateBookingWithHistory persists the booking change and its
	// history entry in one transaction. bumpStats also increments the
	// completed-booking counters on the service and its business.
	UpdateBookingWithHistory(
		ctx context.Context,
		b *models.Booking,
		h *models.BookingHistory,
		bumpStats bool,
	) error
}
