package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	businessID uint,
	staffID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListDayBookings(
	ctx context.Context,
	businessID uint,
	date string,
	staffID *uint,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Select("time", "end_time", "staff_id").
		Where(
			"business_id = ? AND date = ? AND status IN ('pending', 'confirmed') AND is_cancelled = false",
			businessID, date,
		)

	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var bookings []models.Booking
	if err := q.Order("time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// lockKey builds the two int32 keys for pg_advisory_xact_lock: the
// business and the day number of the booking date.
func lockKey(businessID uint, date string) (int32, int32) {
	t, _ := time.Parse("2006-01-02", date)
	return int32(businessID), int32(t.Unix() / 86400)
}

func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
	changedBy *uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Row locks cannot guard an interval no row occupies yet, so
		// serialize all creates for this business day. The lock is
		// released when the transaction ends.
		bizKey, dayKey := lockKey(b.BusinessID, b.Date)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", bizKey, dayKey).Error; err != nil {
			return err
		}

		q := tx.
			Model(&models.Booking{}).
			Where(
				"business_id = ? AND date = ? AND status IN ('pending', 'confirmed') AND is_cancelled = false AND time < ? AND end_time > ?",
				b.BusinessID, b.Date, b.EndTime, b.Time,
			)

		if b.StaffID != nil {
			q = q.Where("staff_id = ?", *b.StaffID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrField("time", "slot_conflict")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		history := models.BookingHistory{
			BookingID:   b.ID,
			Status:      b.Status,
			Notes:       "Booking created",
			ChangedByID: changedBy,
		}
		return tx.Create(&history).Error
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForCustomer(
	ctx context.Context,
	bookingID uint,
	customerID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingForBusiness(
	ctx context.Context,
	bookingID uint,
	businessID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", bookingID, businessID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingWithHistory(
	ctx context.Context,
	b *models.Booking,
	h *models.BookingHistory,
	bumpStats bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			return err
		}

		if err := tx.Create(h).Error; err != nil {
			return err
		}

		if bumpStats {
			return bumpBookingStats(tx, b.BusinessID, b.ServiceID)
		}
		return nil
	})
}

func bumpBookingStats(tx *gorm.DB, businessID, serviceID uint) error {
	if err := tx.
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		UpdateColumn("total_bookings", gorm.Expr("total_bookings + 1")).Error; err != nil {
		return err
	}

	return tx.
		Model(&models.Business{}).
		Where("id = ?", businessID).
		UpdateColumn("total_bookings", gorm.Expr("total_bookings + 1")).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
