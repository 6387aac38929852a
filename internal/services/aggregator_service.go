/**
 * @description
 * Price aggregation service.
 * One cycle simulates a fetch for every configured provider, sanity-checks the
 * value, persists an observation, and publishes it on the live price channel.
 *
 * @dependencies
 * - gorm.io/gorm: Price store writes
 * - github.com/redis/go-redis/v9: Pub/sub + cache invalidation (optional)
 * - backend/internal/providers: Provider registry and simulators
 *
 * @notes
 * - RunCycle never returns an error: a failing provider is logged and skipped
 *   so it cannot block the others, and scheduling stays outside this service.
 * - Prices at or below FloorPriceTRX are treated as failed fetches and discarded.
 */

package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/models"
	"github.com/trx-sasta/backend/internal/providers"
	"gorm.io/gorm"
)

const (
	// FloorPriceTRX is the sanity floor: no real provider rents 65k energy
	// for 5 TRX or less, so anything at or below it is a failed simulation.
	FloorPriceTRX = 5.0

	// PriceUpdateChannel carries freshly saved observations to SSE subscribers.
	PriceUpdateChannel = "prices:updates"

	defaultRentalDuration = "1 Day"
)

type AggregatorService struct {
	DB        *gorm.DB
	Redis     *redis.Client // optional; nil disables publish and cache invalidation
	Providers []providers.Provider

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAggregatorService(db *gorm.DB, rdb *redis.Client, provs []providers.Provider) *AggregatorService {
	return &AggregatorService{
		DB:        db,
		Redis:     rdb,
		Providers: provs,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RunCycle refreshes the price store with one observation per provider.
func (s *AggregatorService) RunCycle(ctx context.Context) {
	logger.Info("--- Starting price aggregation ---")

	saved := 0
	for _, p := range s.Providers {
		price, err := s.simulate(p)
		if err != nil {
			logger.Error("[SKIP] %s: simulation failed: %v", p.Name, err)
			continue
		}
		if price <= FloorPriceTRX {
			logger.Error("[SKIP] %s: price %.2f TRX is unrealistically low, discarding", p.Name, price)
			continue
		}

		obs := models.PriceObservation{
			ProviderName:     p.Name,
			PriceTRXPer65k:   price,
			RentalDuration:   defaultRentalDuration,
			ReliabilityScore: p.Reliability,
			SourceURL:        p.Link,
		}
		if err := s.DB.WithContext(ctx).Create(&obs).Error; err != nil {
			logger.Error("[SKIP] %s: failed to save observation: %v", p.Name, err)
			continue
		}
		saved++
		logger.Info("[SUCCESS] Saved price for %s @ %.2f TRX", p.Name, price)

		s.publish(ctx, obs)
	}

	if saved > 0 {
		s.invalidateComparisonCache(ctx)
	}
	logger.Info("--- Aggregation finished: %d/%d providers saved ---", saved, len(s.Providers))
}

func (s *AggregatorService) simulate(p providers.Provider) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return p.Simulate(s.rng)
}

// publish pushes the observation to live subscribers, best-effort.
func (s *AggregatorService) publish(ctx context.Context, obs models.PriceObservation) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(obs)
	if err != nil {
		logger.Error("Failed to marshal observation for publish: %v", err)
		return
	}
	if err := s.Redis.Publish(ctx, PriceUpdateChannel, payload).Err(); err != nil {
		logger.Error("Failed to publish price update: %v", err)
	}
}

// invalidateComparisonCache drops the cached comparison so the next
// /compare call sees the fresh observations immediately.
func (s *AggregatorService) invalidateComparisonCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, CacheKeyComparison).Err(); err != nil {
		logger.Error("Failed to invalidate comparison cache: %v", err)
	}
}
