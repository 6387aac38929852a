package services

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/trx-sasta/backend/internal/models"
	"github.com/trx-sasta/backend/internal/providers"
)

func TestRunCycleSavesOneObservationPerProvider(t *testing.T) {
	db := newTestDB(t)
	provs := providers.All()
	svc := NewAggregatorService(db, nil, provs)

	svc.RunCycle(context.Background())

	for _, p := range provs {
		var count int64
		db.Model(&models.PriceObservation{}).Where("provider_name = ?", p.Name).Count(&count)
		if count != 1 {
			t.Fatalf("%s: expected 1 observation, got %d", p.Name, count)
		}
		var obs models.PriceObservation
		db.Where("provider_name = ?", p.Name).First(&obs)
		if obs.PriceTRXPer65k < p.MinPrice || obs.PriceTRXPer65k > p.MaxPrice {
			t.Fatalf("%s: saved price %.4f outside [%.2f, %.2f]", p.Name, obs.PriceTRXPer65k, p.MinPrice, p.MaxPrice)
		}
		if obs.RentalDuration != "1 Day" {
			t.Fatalf("%s: expected duration '1 Day', got %q", p.Name, obs.RentalDuration)
		}
		if obs.SourceURL != p.Link {
			t.Fatalf("%s: expected source url %q, got %q", p.Name, p.Link, obs.SourceURL)
		}
		if obs.FetchedAt.IsZero() {
			t.Fatalf("%s: fetchedAt not stamped", p.Name)
		}
	}
}

func TestRunCycleDiscardsFloorPrices(t *testing.T) {
	db := newTestDB(t)
	// This provider can only draw values at or below the sanity floor.
	cheap := providers.Provider{Name: "Too Cheap", ID: "TC", MinPrice: 1.0, MaxPrice: 2.0}
	svc := NewAggregatorService(db, nil, []providers.Provider{cheap})

	svc.RunCycle(context.Background())

	var count int64
	db.Model(&models.PriceObservation{}).Count(&count)
	if count != 0 {
		t.Fatalf("floor-violating price must not be stored, found %d rows", count)
	}
}

func TestRunCycleIsolatesProviderFailures(t *testing.T) {
	db := newTestDB(t)
	broken := providers.Provider{Name: "Broken", ID: "BR", MinPrice: 9.0, MaxPrice: 8.0} // inverted range: simulation errors
	good := providers.Provider{Name: "Good", ID: "GD", Reliability: 4.0, Link: "https://good.example", MinPrice: 6.0, MaxPrice: 7.0}
	svc := NewAggregatorService(db, nil, []providers.Provider{broken, good})

	svc.RunCycle(context.Background())

	var brokenCount, goodCount int64
	db.Model(&models.PriceObservation{}).Where("provider_name = ?", "Broken").Count(&brokenCount)
	db.Model(&models.PriceObservation{}).Where("provider_name = ?", "Good").Count(&goodCount)
	if brokenCount != 0 {
		t.Fatalf("failing provider must not persist, got %d rows", brokenCount)
	}
	if goodCount != 1 {
		t.Fatalf("one provider's failure must not block the others, got %d rows", goodCount)
	}
}

func TestRunCyclePublishesAndInvalidatesCache(t *testing.T) {
	db := newTestDB(t)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Set(ctx, CacheKeyComparison, "stale", time.Minute).Err(); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	pubsub := redisClient.Subscribe(ctx, PriceUpdateChannel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("failed to confirm subscription: %v", err)
	}
	ch := pubsub.Channel()

	good := providers.Provider{Name: "Good", ID: "GD", Reliability: 4.0, Link: "https://good.example", MinPrice: 6.0, MaxPrice: 7.0}
	svc := NewAggregatorService(db, redisClient, []providers.Provider{good})
	svc.RunCycle(ctx)

	select {
	case msg := <-ch:
		if msg.Channel != PriceUpdateChannel {
			t.Fatalf("unexpected channel %q", msg.Channel)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for price update publish")
	}

	if n, err := redisClient.Exists(ctx, CacheKeyComparison).Result(); err != nil || n != 0 {
		t.Fatalf("expected comparison cache to be invalidated (exists=%d, err=%v)", n, err)
	}
}
