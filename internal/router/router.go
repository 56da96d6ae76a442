package router

import (
	"database/sql"

	"hotel_admin_backend/internal/handlers"
	"hotel_admin_backend/internal/middleware"
	"hotel_admin_backend/internal/repositories"
	"hotel_admin_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	costRepo := repositories.NewOperationalCostRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	guestService := services.NewGuestService(guestRepo, db)
	bookingService := services.NewBookingService(bookingRepo, guestRepo, costRepo, db)
	costService := services.NewOperationalCostService(costRepo, bookingRepo, db)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	guestHandler := handlers.NewGuestHandler(guestService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	costHandler := handlers.NewOperationalCostHandler(costService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupGuestRoutes(authenticated, guestHandler)
		SetupBookingRoutes(authenticated, bookingHandler, costHandler)
		SetupAnalyticsRoutes(authenticated, analyticsHandler)
	}
}
