package router

import (
	"hotel_admin_backend/internal/handlers"
	"hotel_admin_backend/internal/middleware"
	"hotel_admin_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.LogoutUser)
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupGuestRoutes sets up the guest routes.
// Write operations are Admin only; reads are available to Admin and Staff.
func SetupGuestRoutes(authenticatedGroup *gin.RouterGroup, guestHandler *handlers.GuestHandler) {
	guestWriteRoutes := authenticatedGroup.Group("/guests")
	guestWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		guestWriteRoutes.POST("", guestHandler.CreateGuest)
		guestWriteRoutes.PUT("/:id", guestHandler.UpdateGuest)
		guestWriteRoutes.DELETE("/:id", guestHandler.DeleteGuest)
	}

	authenticatedGroup.GET("/guests", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), guestHandler.GetGuests)
	authenticatedGroup.GET("/guests/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), guestHandler.GetGuestByID)
}

// SetupBookingRoutes sets up the booking routes, including the nested
// operational cost routes.
func SetupBookingRoutes(authenticatedGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler, costHandler *handlers.OperationalCostHandler) {
	bookingRoutes := authenticatedGroup.Group("/bookings")
	bookingRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		bookingRoutes.POST("", bookingHandler.CreateBooking)
		bookingRoutes.GET("", bookingHandler.GetBookings)
		bookingRoutes.GET("/:id", bookingHandler.GetBookingByID)
		bookingRoutes.PUT("/:id", bookingHandler.UpdateBooking)
		bookingRoutes.POST("/:id/confirm", bookingHandler.ConfirmBooking)
		bookingRoutes.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookingRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), bookingHandler.DeleteBooking)

		bookingRoutes.POST("/:id/costs", costHandler.AddOperationalCost)
		bookingRoutes.GET("/:id/costs", costHandler.GetOperationalCosts)
		bookingRoutes.DELETE("/:id/costs/:costId", costHandler.DeleteOperationalCost)
	}
}

// SetupAnalyticsRoutes sets up the analytics routes. Financial reports are
// restricted to Admin.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	analyticsRoutes := authenticatedGroup.Group("/analytics")
	analyticsRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		analyticsRoutes.GET("/revenue", analyticsHandler.GetRevenueReport)
		analyticsRoutes.GET("/profit", analyticsHandler.GetProfitReport)
		analyticsRoutes.GET("/dashboard", analyticsHandler.GetAnalyticsDashboard)
		analyticsRoutes.GET("/summary", analyticsHandler.GetAnalyticsSummary)
	}
}
