/**
 * @description
 * Comparison service: "best current price per provider".
 * Reduces the trailing 24h of observations to the newest entry per provider,
 * sorted cheapest first. Results are cached in Redis, Cache -> DB.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - Providers with no observation inside the window are simply absent;
 *   callers must handle an empty or partial list.
 * - Cache failures degrade silently to the DB path.
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/models"
	"gorm.io/gorm"
)

const (
	// ComparisonWindow is the trailing period considered "current".
	ComparisonWindow = 24 * time.Hour

	CacheKeyComparison = "prices:compare"
	comparisonCacheTTL = time.Minute
)

type ComparisonService struct {
	DB    *gorm.DB
	Redis *redis.Client // optional; nil disables caching
}

func NewComparisonService(db *gorm.DB, rdb *redis.Client) *ComparisonService {
	return &ComparisonService{DB: db, Redis: rdb}
}

// Latest returns at most one (the newest) observation per provider from the
// trailing 24h window, sorted ascending by price. An empty store yields an
// empty slice, not an error.
func (s *ComparisonService) Latest(ctx context.Context) ([]models.PriceObservation, error) {
	// 1. Try Redis
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, CacheKeyComparison).Result()
		if err == nil {
			var cached []models.PriceObservation
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
			// If unmarshal fails, fall through to DB
		}
	}

	// 2. Window query, newest first. Ordering by id as well keeps the
	// winner deterministic when two fetch timestamps collide.
	cutoff := time.Now().Add(-ComparisonWindow)
	var recent []models.PriceObservation
	err := s.DB.WithContext(ctx).
		Where("fetched_at >= ?", cutoff).
		Order("fetched_at DESC, id DESC").
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent observations: %w", err)
	}

	// 3. First occurrence in newest-first order wins per provider
	seen := make(map[string]bool, len(recent))
	latest := make([]models.PriceObservation, 0, len(recent))
	for _, obs := range recent {
		if seen[obs.ProviderName] {
			continue
		}
		seen[obs.ProviderName] = true
		latest = append(latest, obs)
	}

	// 4. Cheapest first
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].PriceTRXPer65k < latest[j].PriceTRXPer65k
	})

	s.cache(ctx, latest)
	return latest, nil
}

func (s *ComparisonService) cache(ctx context.Context, latest []models.PriceObservation) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(latest)
	if err != nil {
		logger.Error("Failed to marshal comparison for cache: %v", err)
		return
	}
	if err := s.Redis.Set(ctx, CacheKeyComparison, data, comparisonCacheTTL).Err(); err != nil {
		logger.Error("Failed to set comparison cache: %v", err)
	}
}
