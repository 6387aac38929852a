/**
 * @description
 * Main entry point for the TRX Sasta Energy backend API.
 * Initializes the Fiber web server, loads configuration, connects the stores,
 * schedules the price aggregation job, and sets up routes.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: Web framework
 * - github.com/robfig/cron/v3: Aggregation schedule
 * - backend/internal/config: Config loader
 * - backend/internal/db: Database connections
 *
 * @notes
 * - Connects to Postgres and Redis on startup; Redis is optional.
 * - Runs one aggregation cycle immediately when not in production.
 */

package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/trx-sasta/backend/internal/api"
	"github.com/trx-sasta/backend/internal/config"
	"github.com/trx-sasta/backend/internal/db"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/providers"
	"github.com/trx-sasta/backend/internal/services"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Initialize Database Connections
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres: %v", err)
	}

	// Redis is used for caching and the live feed; the API degrades without it.
	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Error("⚠️ Redis unavailable, caching and live feed disabled: %v", err)
		redisClient = nil
	}

	// 3. Scheduled Price Aggregation
	aggregator := services.NewAggregatorService(pgDB, redisClient, providers.All())

	if !cfg.IsProduction() {
		logger.Info("Running initial price fetch on server start (%s mode)...", cfg.Server.Env)
		aggregator.RunCycle(context.Background())
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.AggregationSchedule, func() {
		logger.Info("Running scheduled TRX price aggregation...")
		aggregator.RunCycle(context.Background())
	}); err != nil {
		logger.Fatal("Invalid aggregation schedule %q: %v", cfg.Jobs.AggregationSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 4. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName: "TRX Sasta Energy Backend",
	})

	// 5. Global Middleware
	app.Use(recover.New())     // Panic recovery
	app.Use(fiberLogger.New()) // Request logging
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-auth-token",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// 6. Routes
	api.SetupRoutes(app, pgDB, redisClient, cfg)

	// 7. Start Server
	logger.Info("🚀 Starting TRX Sasta Energy Backend on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
