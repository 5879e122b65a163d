package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonora/salon-booking/internal/httperr"
	"github.com/salonora/salon-booking/internal/httpresp"
	"github.com/salonora/salon-booking/internal/models"
	"github.com/salonora/salon-booking/internal/timezone"
	"github.com/salonora/salon-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db        *gorm.DB
	listSlots *booking.ListSlots
}

func NewPublicHandler(db *gorm.DB, listSlots *booking.ListSlots) *PublicHandler {
	return &PublicHandler{
		db:        db,
		listSlots: listSlots,
	}
}

////////////////////////////////////////////////////////
// CATEGORIES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.
		Where("is_active = true").
		Order("\"order\" ASC, name ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	httpresp.List(c, categories)
}

////////////////////////////////////////////////////////
// LOCATIONS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListCities(c *gin.Context) {
	var cities []models.City
	if err := h.db.
		Where("is_active = true").
		Order("name ASC").
		Find(&cities).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cities", "Could not list cities.")
		return
	}

	httpresp.List(c, cities)
}

func (h *PublicHandler) ListAreas(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_city_id", "Invalid city.")
		return
	}

	var areas []models.Area
	if err := h.db.
		Where("city_id = ? AND is_active = true", cityID).
		Order("name ASC").
		Find(&areas).Error; err != nil {
		httperr.Internal(c, "failed_to_list_areas", "Could not list areas.")
		return
	}

	httpresp.List(c, areas)
}

////////////////////////////////////////////////////////
// BUSINESSES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBusinesses(c *gin.Context) {
	q := h.db.
		Model(&models.Business{}).
		Where("is_active = true AND status = ?", models.BusinessStatusApproved)

	if category := c.Query("category"); category != "" {
		q = q.Joins("JOIN categories ON categories.id = businesses.category_id").
			Where("categories.slug = ?", category)
	}

	if search := strings.TrimSpace(strings.ToLower(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(businesses.name) LIKE ? OR LOWER(businesses.description) LIKE ?", like, like)
	}

	if city := c.Query("city"); city != "" {
		q = q.Where("city_id = ?", city)
	}

	if area := c.Query("area"); area != "" {
		q = q.Where("area_id = ?", area)
	}

	if minRating := c.Query("min_rating"); minRating != "" {
		if r, err := strconv.ParseFloat(minRating, 64); err == nil {
			q = q.Where("average_rating >= ?", r)
		}
	}

	// Price filters go through the business's active services.
	minPrice := c.Query("min_price")
	maxPrice := c.Query("max_price")
	if minPrice != "" || maxPrice != "" {
		priced := h.db.
			Model(&models.Service{}).
			Select("1").
			Where("services.business_id = businesses.id AND services.is_active = true")

		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			priced = priced.Where("services.price >= ?", v)
		}
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			priced = priced.Where("services.price <= ?", v)
		}

		q = q.Where("EXISTS (?)", priced)
	}

	var businesses []models.Business
	if err := q.
		Preload("Category").
		Preload("City").
		Preload("Area").
		Order("is_featured DESC, average_rating DESC, total_reviews DESC").
		Find(&businesses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_businesses", "Could not list businesses.")
		return
	}

	httpresp.List(c, businesses)
}

func (h *PublicHandler) GetBusiness(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	httpresp.OK(c, biz)
}

// findBusiness resolves the :id path param, accepting a numeric ID or
// a slug, and only returns publicly visible businesses.
func (h *PublicHandler) findBusiness(c *gin.Context) (*models.Business, bool) {
	param := c.Param("id")

	q := h.db.
		Preload("Category").
		Preload("City").
		Preload("Area").
		Where("is_active = true AND status = ?", models.BusinessStatusApproved)

	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("slug = ?", param)
	}

	var biz models.Business
	if err := q.First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}

	return &biz, true
}

////////////////////////////////////////////////////////
// SERVICES / STAFF / REVIEWS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ? AND is_active = true", biz.ID).
		Order("\"order\" ASC, id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("business_id = ? AND is_active = true", biz.ID).
		Order("\"order\" ASC, id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *PublicHandler) ListReviews(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("Customer").
		Where("business_id = ? AND is_approved = true", biz.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSlots(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	serviceStr := c.Query("service")
	if serviceStr == "" {
		httperr.BadRequest(c, "missing_params", "Service and date are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	date := c.DefaultQuery("date", timezone.Today())

	var staffID *uint
	if staffStr := c.Query("staff"); staffStr != "" {
		id, err := strconv.ParseUint(staffStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	slots, err := h.listSlots.Execute(c.Request.Context(), booking.ListSlotsInput{
		BusinessID: biz.ID,
		ServiceID:  uint(serviceID),
		StaffID:    staffID,
		Date:       date,
	})
	if err != nil {
		if writeDomainError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_slots", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
