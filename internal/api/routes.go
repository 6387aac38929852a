/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/trx-sasta/backend/internal/api/handlers"
	"github.com/trx-sasta/backend/internal/api/middleware"
	"github.com/trx-sasta/backend/internal/config"
	"github.com/trx-sasta/backend/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Services
	authService := services.NewAuthService(db, cfg)
	historyService := services.NewHistoryService(db)
	comparisonService := services.NewComparisonService(db, rdb)

	// 2. Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	compareHandler := handlers.NewCompareHandler(comparisonService)

	// 3. Define Routes
	apiGroup := app.Group("/api")

	// Health Check
	apiGroup.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "trx-sasta-backend"})
	})

	// Public Auth routes
	auth := apiGroup.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes (session token required)
	protected := middleware.Protected(authService)
	apiGroup.Get("/history", protected, historyHandler.GetHistory)
	apiGroup.Post("/history", protected, historyHandler.LogTransaction)
	apiGroup.Get("/compare", protected, compareHandler.GetComparison)
	apiGroup.Get("/compare/stream", protected, compareHandler.StreamPriceUpdates)
}
