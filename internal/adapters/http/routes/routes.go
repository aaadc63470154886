package routes

import (
	"shiftdesk/internal/adapters/http/handlers"
	"shiftdesk/internal/adapters/http/middleware"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/config"
	"shiftdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	timeOffRepo := repositories.NewTimeOffRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(employeeRepo, refreshTokenRepo, cfg)
	shiftService := services.NewShiftService(shiftRepo, employeeRepo, timeOffRepo)
	scheduleService := services.NewScheduleService(shiftRepo)
	timeOffService := services.NewTimeOffService(timeOffRepo, employeeRepo)
	analyticsService := services.NewAnalyticsService(shiftRepo, employeeRepo, timeOffRepo, cfg.WeekStart)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	timeOffHandler := handlers.NewTimeOffHandler(timeOffService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Shift routes (HR manages shifts and assignments)
	shiftRoutes := apiV1.Group("/shifts")
	shiftRoutes.Use(middleware.AuthMiddleware(cfg))
	setupShiftRoutes(shiftRoutes, shiftHandler)

	// Schedule routes (HR and managers)
	scheduleRoutes := apiV1.Group("/schedule")
	scheduleRoutes.Use(middleware.AuthMiddleware(cfg))
	setupScheduleRoutes(scheduleRoutes, scheduleHandler)

	// Time-off routes (any authenticated employee files, HR finalizes)
	timeOffRoutes := apiV1.Group("/time-off")
	timeOffRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTimeOffRoutes(timeOffRoutes, timeOffHandler)

	// Analytics routes (HR and managers)
	analyticsRoutes := apiV1.Group("/analytics")
	analyticsRoutes.Use(middleware.AuthMiddleware(cfg))
	analyticsRoutes.Use(middleware.HROrManager())
	setupAnalyticsRoutes(analyticsRoutes, analyticsHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/signup", middleware.AuthRateLimiter(), handler.SignUp)
	router.Post("/signin", middleware.AuthRateLimiter(), handler.SignIn)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)
	router.Post("/logout", handler.Logout)
}

// setupShiftRoutes configures shift management routes
func setupShiftRoutes(router fiber.Router, handler *handlers.ShiftHandler) {
	router.Post("/", middleware.HROrManager(), handler.Create)
	router.Patch("/:id/assign/employee/:employeeId", middleware.HROnly(), handler.Assign)
}

// setupScheduleRoutes configures schedule routes (HR and managers)
func setupScheduleRoutes(router fiber.Router, handler *handlers.ScheduleHandler) {
	router.Get("/", middleware.HROrManager(), handler.GetDaily)
}

// setupTimeOffRoutes configures time-off routes
func setupTimeOffRoutes(router fiber.Router, handler *handlers.TimeOffHandler) {
	router.Post("/", handler.Create)
	router.Patch("/:id/approve", middleware.HROnly(), handler.Approve)
	router.Patch("/:id/reject", middleware.HROnly(), handler.Reject)
}

// setupAnalyticsRoutes configures reporting routes
func setupAnalyticsRoutes(router fiber.Router, handler *handlers.AnalyticsHandler) {
	router.Get("/coverage", handler.Coverage)
	router.Get("/analyze", handler.Analyze)
	router.Get("/workload/:employeeId", handler.Workload)
}
