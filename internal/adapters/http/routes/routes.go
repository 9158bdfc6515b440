package routes

import (
	"context"
	"time"

	"garderie-api/internal/adapters/http/handlers"
	"garderie-api/internal/adapters/http/middleware"
	"garderie-api/internal/config"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application. checkDB backs /health and
// may be nil.
func Setup(app *fiber.App, svc *services.Services, cfg *config.Config, checkDB func(context.Context) error) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, checkDB)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)
	childHandler := handlers.NewChildHandler(svc.Children)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments, svc.Receipts)
	menuHandler := handlers.NewMenuHandler(svc.Menus)
	attendanceHandler := handlers.NewAttendanceHandler(svc.Attendance)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// ============================================================
	// Public Routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// ============================================================
	// API v1
	// ============================================================
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// Everything below requires a valid access token
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg))

	setupUserRoutes(protected.Group("/users", middleware.NoStore(), middleware.AdminOnly()), userHandler)
	setupChildRoutes(protected.Group("/children", middleware.NoStore()), childHandler)
	setupPaymentRoutes(protected.Group("/payments", middleware.NoStore()), paymentHandler)
	setupMenuRoutes(protected.Group("/menus", middleware.PrivateCache(5*time.Minute)), menuHandler)
	setupAttendanceRoutes(protected.Group("/attendance", middleware.NoStore()), attendanceHandler)
	setupDashboardRoutes(protected.Group("/dashboard", middleware.NoStore()), dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)

	auth := middleware.AuthMiddleware(cfg)
	router.Post("/logout", auth, handler.Logout)
	router.Get("/me", auth, handler.Me)
	router.Put("/profile", auth, handler.UpdateProfile)
	router.Put("/change-password", auth, handler.ChangePassword)
	router.Get("/permissions", auth, handler.Permissions)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
	router.Put("/:id/reset-password", handler.ResetPassword)
}

func setupChildRoutes(router fiber.Router, handler *handlers.ChildHandler) {
	read := middleware.RequirePermission(domain.PermChildrenRead)
	write := middleware.RequirePermission(domain.PermChildrenWrite)

	router.Get("/", read, handler.ListChildren)
	router.Post("/", write, handler.CreateChild)
	router.Get("/:id", read, handler.GetChild)
	router.Put("/:id", write, handler.UpdateChild)
	router.Delete("/:id", middleware.RequirePermission(domain.PermChildrenDelete), handler.DeleteChild)
}

func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	read := middleware.RequirePermission(domain.PermPaymentsRead)
	write := middleware.RequirePermission(domain.PermPaymentsWrite)

	router.Get("/", read, handler.ListPayments)
	router.Post("/", write, handler.CreatePayment)
	router.Get("/daily-report", read, handler.DailyReport)
	router.Get("/:id", read, handler.GetPayment)
	router.Get("/:id/receipt", read, handler.Receipt)
	router.Patch("/:id/status", middleware.RequirePermission(domain.PermPaymentsStatus), handler.UpdateStatus)
}

func setupMenuRoutes(router fiber.Router, handler *handlers.MenuHandler) {
	read := middleware.RequirePermission(domain.PermMenusRead)
	write := middleware.RequirePermission(domain.PermMenusWrite)

	router.Get("/", read, handler.ListMenus)
	router.Post("/", write, handler.CreateMenu)
	router.Get("/current", read, handler.CurrentMenu)
	router.Get("/:id", read, handler.GetMenu)
	router.Put("/:id", write, handler.UpdateMenu)
	router.Delete("/:id", middleware.RequirePermission(domain.PermMenusDelete), handler.DeleteMenu)
	router.Post("/:id/duplicate", write, handler.DuplicateMenu)
}

func setupAttendanceRoutes(router fiber.Router, handler *handlers.AttendanceHandler) {
	read := middleware.RequirePermission(domain.PermAttendanceRead)
	write := middleware.RequirePermission(domain.PermAttendanceWrite)

	router.Get("/", read, handler.ListAttendance)
	router.Post("/", write, handler.MarkPresent)
	router.Get("/children", read, handler.Children)
	router.Get("/stats", read, handler.Stats)
	router.Put("/:id/checkout", write, handler.CheckOut)
	router.Delete("/:id", write, handler.DeleteAttendance)
}

// setupDashboardRoutes configures dashboard and report routes (Admin only)
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/stats", middleware.RequirePermission(domain.PermDashboardView), handler.GetStats)
	router.Get("/financial-report", middleware.RequirePermission(domain.PermReportsView), handler.FinancialReport)
}
