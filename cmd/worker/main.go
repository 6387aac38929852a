/**
 * @description
 * Worker Service Entry Point.
 * Runs the price aggregation job on its schedule without serving HTTP,
 * for deployments that separate the API from background work.
 *
 * @dependencies
 * - github.com/robfig/cron/v3
 * - backend/internal/config
 * - backend/internal/db
 * - backend/internal/services
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/trx-sasta/backend/internal/config"
	"github.com/trx-sasta/backend/internal/db"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/providers"
	"github.com/trx-sasta/backend/internal/services"
)

func main() {
	logger.Info("🔥 Starting TRX Sasta worker...")

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect stores
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Postgres connection failed: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Error("⚠️ Redis unavailable, live feed disabled: %v", err)
		redisClient = nil
	}

	// 3. Aggregation schedule
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aggregator := services.NewAggregatorService(pgDB, redisClient, providers.All())

	if !cfg.IsProduction() {
		aggregator.RunCycle(ctx)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.AggregationSchedule, func() {
		logger.Info("Running scheduled TRX price aggregation...")
		aggregator.RunCycle(ctx)
	}); err != nil {
		logger.Fatal("Invalid aggregation schedule %q: %v", cfg.Jobs.AggregationSchedule, err)
	}
	scheduler.Start()

	// 4. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	<-scheduler.Stop().Done()
	logger.Info("Worker exited.")
}
