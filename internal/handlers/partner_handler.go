package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/httpresp"
	"github.com/salonora/salon-booking/internal/middleware"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
	"github.com/salonora/salon-booking/internal/usecase/booking"
	"github.com/salonora/salon-booking/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PartnerHandler struct {
	db           *gorm.DB
	updateStatus *booking.UpdateStatus
}

func NewPartnerHandler(db *gorm.DB, updateStatus *booking.UpdateStatus) *PartnerHandler {
	return &PartnerHandler{
		db:           db,
		updateStatus: updateStatus,
	}
}

// ownerBusiness loads the caller's business. Every partner route is
// scoped to it.
func (h *PartnerHandler) ownerBusiness(c *gin.Context) (*models.Business, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var biz models.Business
	if err := h.db.Where("owner_id = ?", userID).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "No business registered for this account.")
		return nil, false
	}

	return &biz, true
}

////////////////////////////////////////////////////////
// DASHBOARD
////////////////////////////////////////////////////////

func (h *PartnerHandler) DashboardStats(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "month")

	now := timezone.Now()
	var from string
	switch period {
	case "week":
		from = now.AddDate(0, 0, -7).Format("2006-01-02")
	case "month":
		from = now.AddDate(0, -1, 0).Format("2006-01-02")
	case "year":
		from = now.AddDate(-1, 0, 0).Format("2006-01-02")
	default:
		httperr.BadRequest(c, "invalid_period", "Period must be week, month or year.")
		return
	}

	today := timezone.Today()

	var totalBookings int64
	h.db.Model(&models.Booking{}).
		Where("business_id = ? AND date >= ?", biz.ID, from).
		Count(&totalBookings)

	var pendingBookings int64
	h.db.Model(&models.Booking{}).
		Where("business_id = ? AND status = 'pending'", biz.ID).
		Count(&pendingBookings)

	var todayBookings int64
	h.db.Model(&models.Booking{}).
		Where("business_id = ? AND date = ? AND status IN ('pending', 'confirmed', 'in_progress')", biz.ID, today).
		Count(&todayBookings)

	var revenue float64
	h.db.Model(&models.Booking{}).
		Select("COALESCE(SUM(final_price), 0)").
		Where("business_id = ? AND date >= ? AND status = 'completed'", biz.ID, from).
		Scan(&revenue)

	c.JSON(http.StatusOK, gin.H{
		"period":           period,
		"from":             from,
		"total_bookings":   totalBookings,
		"pending_bookings": pendingBookings,
		"today_bookings":   todayBookings,
		"revenue":          revenue,
		"average_rating":   biz.AverageRating,
		"total_reviews":    biz.TotalReviews,
	})
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PartnerHandler) ListBookings(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.
		Model(&models.Booking{}).
		Where("business_id = ?", biz.ID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_bookings", "Could not count bookings.")
		return
	}

	var bookings []models.Booking
	if err := q.
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Order("date DESC, time DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"limit":    limit,
		"total":    total,
		"bookings": bookings,
	})
}

func (h *PartnerHandler) GetBooking(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var b models.Booking
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("id = ? AND business_id = ?", id, biz.ID).
		First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	var history []models.BookingHistory
	h.db.Where("booking_id = ?", b.ID).Order("created_at ASC").Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"booking": b,
		"history": history,
	})
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *PartnerHandler) UpdateBookingStatus(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), booking.UpdateStatusInput{
		BusinessID: biz.ID,
		UserID:     userID,
		BookingID:  uint(id),
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		if writeDomainError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_status", "Could not update the booking status.")
		return
	}

	httpresp.OK(c, b)
}

func (h *PartnerHandler) Calendar(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	start := c.DefaultQuery("start", timezone.Today())
	end := c.DefaultQuery("end", start)

	if !validators.IsDateYMD(start) || !validators.IsDateYMD(end) {
		httperr.BadRequest(c, "invalid_date_range", "Start and end must be YYYY-MM-DD.")
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("business_id = ? AND date >= ? AND date <= ? AND is_cancelled = false", biz.ID, start, end).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_load_calendar", "Could not load the calendar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":    start,
		"end":      end,
		"bookings": bookings,
	})
}

////////////////////////////////////////////////////////
// BUSINESS PROFILE
////////////////////////////////////////////////////////

func (h *PartnerHandler) GetBusiness(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	httpresp.OK(c, biz)
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	CityID      *uint   `json:"city_id"`
	AreaID      *uint   `json:"area_id"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`

	OpensAt    *string `json:"opens_at"`
	ClosesAt   *string `json:"closes_at"`
	ClosedDays *[]int  `json:"closed_days"`

	SlotDurationMinutes       *int  `json:"slot_duration_minutes"`
	BookingAdvanceDays        *int  `json:"booking_advance_days"`
	CancellationDeadlineHours *int  `json:"cancellation_deadline_hours"`
	AllowOnlineBooking        *bool `json:"allow_online_booking"`
	AutoConfirmBooking        *bool `json:"auto_confirm_booking"`
}

func (h *PartnerHandler) UpdateBusiness(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		biz.Name = *req.Name
	}
	if req.Description != nil {
		biz.Description = *req.Description
	}
	if req.CategoryID != nil {
		biz.CategoryID = req.CategoryID
	}
	if req.CityID != nil {
		biz.CityID = req.CityID
	}
	if req.AreaID != nil {
		// The area must belong to the business's city.
		var area models.Area
		if err := h.db.First(&area, *req.AreaID).Error; err != nil {
			httperr.Field(c, http.StatusBadRequest, "area_id", "unknown_area")
			return
		}
		if biz.CityID == nil || area.CityID != *biz.CityID {
			httperr.Field(c, http.StatusBadRequest, "area_id", "area_outside_city")
			return
		}
		biz.AreaID = req.AreaID
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}

	if req.OpensAt != nil {
		if !validators.IsTimeHHMM(*req.OpensAt) {
			httperr.Field(c, http.StatusBadRequest, "opens_at", "invalid_time")
			return
		}
		biz.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		if !validators.IsTimeHHMM(*req.ClosesAt) {
			httperr.Field(c, http.StatusBadRequest, "closes_at", "invalid_time")
			return
		}
		biz.ClosesAt = *req.ClosesAt
	}
	if biz.OpensAt >= biz.ClosesAt {
		httperr.Field(c, http.StatusBadRequest, "closes_at", "closes_before_open")
		return
	}

	if req.ClosedDays != nil {
		for _, d := range *req.ClosedDays {
			if d < 0 || d > 6 {
				httperr.Field(c, http.StatusBadRequest, "closed_days", "invalid_weekday")
				return
			}
		}
		biz.ClosedDays = models.IntList(*req.ClosedDays)
	}

	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes < 5 || *req.SlotDurationMinutes > 240 {
			httperr.Field(c, http.StatusBadRequest, "slot_duration_minutes", "out_of_range")
			return
		}
		biz.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.BookingAdvanceDays != nil {
		if *req.BookingAdvanceDays < 1 || *req.BookingAdvanceDays > 365 {
			httperr.Field(c, http.StatusBadRequest, "booking_advance_days", "out_of_range")
			return
		}
		biz.BookingAdvanceDays = *req.BookingAdvanceDays
	}
	if req.CancellationDeadlineHours != nil {
		if *req.CancellationDeadlineHours < 0 || *req.CancellationDeadlineHours > 168 {
			httperr.Field(c, http.StatusBadRequest, "cancellation_deadline_hours", "out_of_range")
			return
		}
		biz.CancellationDeadlineHours = *req.CancellationDeadlineHours
	}
	if req.AllowOnlineBooking != nil {
		biz.AllowOnlineBooking = *req.AllowOnlineBooking
	}
	if req.AutoConfirmBooking != nil {
		biz.AutoConfirmBooking = *req.AutoConfirmBooking
	}

	if err := h.db.Save(biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not update the business.")
		return
	}

	httpresp.OK(c, biz)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

type ServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=5,max=480"`
	Price           float64  `json:"price" binding:"required,min=0"`
	DiscountedPrice *float64 `json:"discounted_price"`
	IsPopular       bool     `json:"is_popular"`
	IsActive        *bool    `json:"is_active"`
	Order           int      `json:"order"`

	StaffIDs []uint `json:"staff_ids"`
}

func (h *PartnerHandler) ListServices(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ?", biz.ID).
		Order("\"order\" ASC, id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

// validateStaffIDs checks every requested staff ID against the
// business roster. Unknown IDs reject the whole request instead of
// being dropped silently.
func (h *PartnerHandler) validateStaffIDs(businessID uint, staffIDs []uint) bool {
	if len(staffIDs) == 0 {
		return true
	}

	var count int64
	h.db.Model(&models.Staff{}).
		Where("business_id = ? AND id IN ?", businessID, staffIDs).
		Count(&count)

	return count == int64(len(staffIDs))
}

func (h *PartnerHandler) replaceServiceStaff(tx *gorm.DB, serviceID uint, staffIDs []uint) error {
	if err := tx.Where("service_id = ?", serviceID).Delete(&models.ServiceStaff{}).Error; err != nil {
		return err
	}

	for _, staffID := range staffIDs {
		assignment := models.ServiceStaff{
			ServiceID: serviceID,
			StaffID:   staffID,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *PartnerHandler) CreateService(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !h.validateStaffIDs(biz.ID, req.StaffIDs) {
		httperr.Field(c, http.StatusBadRequest, "staff_ids", "unknown_staff")
		return
	}

	svc := models.Service{
		BusinessID:      biz.ID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		IsPopular:       req.IsPopular,
		IsActive:        true,
		Order:           req.Order,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
		return h.replaceServiceStaff(tx, svc.ID, req.StaffIDs)
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *PartnerHandler) UpdateService(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", id, biz.ID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !h.validateStaffIDs(biz.ID, req.StaffIDs) {
		httperr.Field(c, http.StatusBadRequest, "staff_ids", "unknown_staff")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price
	svc.DiscountedPrice = req.DiscountedPrice
	svc.IsPopular = req.IsPopular
	svc.Order = req.Order
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&svc).Error; err != nil {
			return err
		}
		return h.replaceServiceStaff(tx, svc.ID, req.StaffIDs)
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *PartnerHandler) DeleteService(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", id, biz.ID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	// Bookings keep a RESTRICT FK to services, so deactivate instead of
	// deleting once the service has history.
	var bookingCount int64
	h.db.Model(&models.Booking{}).Where("service_id = ?", svc.ID).Count(&bookingCount)

	if bookingCount > 0 {
		if err := h.db.Model(&svc).Update("is_active", false).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_service", "Could not remove the service.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deactivated": true})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.ServiceStaff{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not remove the service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

////////////////////////////////////////////////////////
// STAFF
////////////////////////////////////////////////////////

type StaffRequest struct {
	Name              string `json:"name" binding:"required"`
	Title             string `json:"title"`
	Bio               string `json:"bio"`
	IsActive          *bool  `json:"is_active"`
	CanAcceptBookings *bool  `json:"can_accept_bookings"`
	Order             int    `json:"order"`
}

func (h *PartnerHandler) ListStaff(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("business_id = ?", biz.ID).
		Order("\"order\" ASC, id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *PartnerHandler) CreateStaff(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	st := models.Staff{
		BusinessID:        biz.ID,
		Name:              req.Name,
		Title:             req.Title,
		Bio:               req.Bio,
		IsActive:          true,
		CanAcceptBookings: true,
		Order:             req.Order,
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if req.CanAcceptBookings != nil {
		st.CanAcceptBookings = *req.CanAcceptBookings
	}

	if err := h.db.Create(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Could not create the staff member.")
		return
	}

	httpresp.Created(c, st)
}

func (h *PartnerHandler) UpdateStaff(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	var st models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", id, biz.ID).
		First(&st).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	st.Name = req.Name
	st.Title = req.Title
	st.Bio = req.Bio
	st.Order = req.Order
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if req.CanAcceptBookings != nil {
		st.CanAcceptBookings = *req.CanAcceptBookings
	}

	if err := h.db.Save(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update the staff member.")
		return
	}

	httpresp.OK(c, st)
}

func (h *PartnerHandler) DeleteStaff(c *gin.Context) {
	biz, ok := h.ownerBusiness(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	var st models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", id, biz.ID).
		First(&st).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	// Bookings reference staff with SET NULL, so a hard delete is safe.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", st.ID).Delete(&models.ServiceStaff{}).Error; err != nil {
			return err
		}
		return tx.Delete(&st).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "Could not remove the staff member.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
