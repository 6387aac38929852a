/**
 * @description
 * Comparison API Handlers.
 * Serves the cheapest-first provider comparison and a live price feed over SSE.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - github.com/redis/go-redis/v9 (pub/sub for the live feed)
 */

package handlers

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/services"
)

type CompareHandler struct {
	Service *services.ComparisonService
}

func NewCompareHandler(service *services.ComparisonService) *CompareHandler {
	return &CompareHandler{Service: service}
}

// GetComparison returns the latest price per provider, cheapest first
// GET /api/compare
func (h *CompareHandler) GetComparison(c *fiber.Ctx) error {
	latest, err := h.Service.Latest(c.Context())
	if err != nil {
		logger.Error("GetComparison: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Error fetching comparison data."})
	}

	logger.Info("[API Response] Sending %d unique provider entries.", len(latest))
	return c.JSON(latest)
}

// StreamPriceUpdates streams aggregator publishes over SSE
// GET /api/compare/stream
func (h *CompareHandler) StreamPriceUpdates(c *fiber.Ctx) error {
	if h.Service.Redis == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"msg": "Live feed unavailable."})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	requestCtx := c.Context()

	ctx, cancel := context.WithCancel(context.Background())

	pubsub := h.Service.Redis.Subscribe(ctx, services.PriceUpdateChannel)
	ch := pubsub.Channel()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cancel()
			_ = pubsub.Close()
		}()

		requestDone := requestCtx.Done()

		for {
			select {
			case <-requestDone:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
