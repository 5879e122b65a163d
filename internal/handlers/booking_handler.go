package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonora/salon-booking/internal/domain/booking"
	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/httpresp"
	"github.com/salonora/salon-booking/internal/middleware"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
	"github.com/salonora/salon-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingHandler struct {
	db     *gorm.DB
	create *booking.CreateBooking
	cancel *booking.CancelBooking
}

func NewBookingHandler(db *gorm.DB, create *booking.CreateBooking, cancel *booking.CancelBooking) *BookingHandler {
	return &BookingHandler{
		db:     db,
		create: create,
		cancel: cancel,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	BusinessID uint   `json:"business_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	StaffID    *uint  `json:"staff_id"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:mm
	Notes      string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type CreateReviewRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`

	ServiceQuality *int `json:"service_quality" binding:"omitempty,min=1,max=5"`
	Cleanliness    *int `json:"cleanliness" binding:"omitempty,min=1,max=5"`
	StaffBehavior  *int `json:"staff_behavior" binding:"omitempty,min=1,max=5"`
	ValueForMoney  *int `json:"value_for_money" binding:"omitempty,min=1,max=5"`

	Title   string `json:"title"`
	Comment string `json:"comment"`
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *BookingHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.
		Preload("Business").
		Preload("Service").
		Preload("Staff").
		Where("customer_id = ?", customerID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if c.Query("upcoming") == "true" {
		q = q.Where("date >= ? AND status IN ('pending', 'confirmed')", timezone.Today())
	}

	var bookings []models.Booking
	if err := q.Order("date DESC, time DESC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var b models.Booking
	if err := h.db.
		Preload("Business").
		Preload("Service").
		Preload("Staff").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		CustomerID: customerID,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		if writeDomainError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancel.Execute(c.Request.Context(), booking.CancelBookingInput{
		CustomerID: customerID,
		BookingID:  uint(id),
		Reason:     req.Reason,
	})
	if err != nil {
		if writeDomainError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel the booking.")
		return
	}

	httpresp.OK(c, b)
}

////////////////////////////////////////////////////////
// REVIEWS
////////////////////////////////////////////////////////

func (h *BookingHandler) CreateReview(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var b models.Booking
	if err := h.db.
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if b.Status != string(domain.StatusCompleted) {
		httperr.Conflict(c, "booking_not_completed", "Only completed bookings can be reviewed.")
		return
	}

	var existing int64
	h.db.Model(&models.Review{}).Where("booking_id = ?", b.ID).Count(&existing)
	if existing > 0 {
		httperr.Conflict(c, "already_reviewed", "This booking already has a review.")
		return
	}

	bookingID := b.ID
	review := models.Review{
		CustomerID: customerID,
		BusinessID: b.BusinessID,
		BookingID:  &bookingID,
		Rating:     req.Rating,

		ServiceQuality: req.ServiceQuality,
		Cleanliness:    req.Cleanliness,
		StaffBehavior:  req.StaffBehavior,
		ValueForMoney:  req.ValueForMoney,

		Title:   req.Title,
		Comment: req.Comment,

		// Reviews tied to a completed booking are trusted.
		IsApproved: true,
		IsVerified: true,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		return
	}

	if err := h.recomputeBusinessRating(b.BusinessID); err != nil {
		httperr.Internal(c, "failed_to_update_stats", "Could not update business stats.")
		return
	}

	httpresp.Created(c, review)
}

// recomputeBusinessRating refreshes the denormalized review counters on
// the business from its approved reviews.
func (h *BookingHandler) recomputeBusinessRating(businessID uint) error {
	var stats struct {
		Count int64
		Avg   float64
	}

	if err := h.db.
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("business_id = ? AND is_approved = true", businessID).
		Scan(&stats).Error; err != nil {
		return err
	}

	return h.db.
		Model(&models.Business{}).
		Where("id = ?", businessID).
		Updates(map[string]any{
			"total_reviews":  stats.Count,
			"average_rating": stats.Avg,
		}).Error
}
