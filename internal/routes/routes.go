package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonora/salon-booking/internal/audit"
	"github.com/salonora/salon-booking/internal/cache"
	"github.com/salonora/salon-booking/internal/config"
	"github.com/salonora/salon-booking/internal/handlers"
	infraRepo "github.com/salonora/salon-booking/internal/infra/repository"
	"github.com/salonora/salon-booking/internal/middleware"
	"github.com/salonora/salon-booking/internal/models"
	ucBooking "github.com/salonora/salon-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	slotCache := cache.NewSlotCache(cfg, 2*time.Minute)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	listSlotsUC := ucBooking.NewListSlots(
		bookingRepo,
		slotCache,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		slotCache,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		slotCache,
		auditDispatcher,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		slotCache,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(db, listSlotsUC)
	bookingHandler := handlers.NewBookingHandler(db, createBookingUC, cancelBookingUC)
	partnerHandler := handlers.NewPartnerHandler(db, updateStatusUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		api.GET("/categories", publicHandler.ListCategories)

		api.GET("/locations/cities", publicHandler.ListCities)
		api.GET("/locations/cities/:id/areas", publicHandler.ListAreas)

		api.GET("/businesses", publicHandler.ListBusinesses)
		api.GET("/businesses/:id", publicHandler.GetBusiness)
		api.GET("/businesses/:id/services", publicHandler.ListServices)
		api.GET("/businesses/:id/staff", publicHandler.ListStaff)
		api.GET("/businesses/:id/reviews", publicHandler.ListReviews)
		api.GET("/businesses/:id/slots", publicHandler.ListSlots)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// CUSTOMER API
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg))
		{
			me.GET("/bookings", bookingHandler.List)
			me.POST("/bookings", bookingHandler.Create)
			me.GET("/bookings/:id", bookingHandler.Get)
			me.POST("/bookings/:id/cancel", bookingHandler.Cancel)
			me.POST("/bookings/:id/review", bookingHandler.CreateReview)
		}

		// ------------------------------
		// PARTNER API
		// ------------------------------
		partner := api.Group("/partner")
		partner.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleBusinessOwner))
		{
			partner.GET("/dashboard/stats", partnerHandler.DashboardStats)

			partner.GET("/bookings", partnerHandler.ListBookings)
			partner.GET("/bookings/:id", partnerHandler.GetBooking)
			partner.PATCH("/bookings/:id/status", partnerHandler.UpdateBookingStatus)
			partner.GET("/calendar", partnerHandler.Calendar)

			partner.GET("/business", partnerHandler.GetBusiness)
			partner.PATCH("/business", partnerHandler.UpdateBusiness)

			partner.GET("/services", partnerHandler.ListServices)
			partner.POST("/services", partnerHandler.CreateService)
			partner.PATCH("/services/:id", partnerHandler.UpdateService)
			partner.DELETE("/services/:id", partnerHandler.DeleteService)

			partner.GET("/staff", partnerHandler.ListStaff)
			partner.POST("/staff", partnerHandler.CreateStaff)
			partner.PATCH("/staff/:id", partnerHandler.UpdateStaff)
			partner.DELETE("/staff/:id", partnerHandler.DeleteStaff)

			partner.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
