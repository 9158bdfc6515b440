package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"garderie-api/internal/adapters/http/middleware"
	"garderie-api/internal/adapters/http/routes"
	"garderie-api/internal/adapters/persistence/memory"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/config"
	"garderie-api/internal/core/services"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	_ "garderie-api/docs" // Swagger docs
)

// @title Garderie Management API
// @version 1.0
// @description API de gestion de garderie: enfants, présences, paiements, menus et rapports.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@garderie.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	clock := services.NewClock(cfg.Location)

	// Storage: GORM for mysql/postgres, in-process maps for memory
	var repos *repositories.Set
	var checkDB func(context.Context) error
	if cfg.Database.Driver == "memory" {
		log.Println("⚠️ DB_DRIVER=memory: data is lost on restart")
		repos = memory.NewSet()
	} else {
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer config.CloseDatabase(db)
		repos = repositories.NewGormSet(db)
		checkDB = func(ctx context.Context) error {
			return config.HealthCheck(ctx, db)
		}
	}

	// Seed the first administrator
	if err := config.NewSeeder(repos.Users, cfg.Seed).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
	}

	svc, err := services.New(repos, cfg, clock)
	if err != nil {
		log.Fatalf("❌ Failed to initialize services: %v", err)
	}

	// Session purge and late-payment sweep
	if err := svc.Cron.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron: %v", err)
	}
	defer svc.Cron.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.DaycareName + " API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, svc, cfg, checkDB)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
