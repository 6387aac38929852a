/**
 * @description
 * History API Handlers.
 * Logs "Rent Now" transactions and lists a user's rental history.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trx-sasta/backend/internal/api/middleware"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/services"
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(service *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

// LogTransactionRequest defines the payload sent on "Rent Now".
// Field names match the original frontend contract.
type LogTransactionRequest struct {
	ProviderName   string  `json:"providerName"`
	PriceTRX       float64 `json:"price_TRX"`
	RentedEnergy   float64 `json:"rentedEnergy"`
	RentalDuration string  `json:"rentalDuration"`
}

// LogTransaction appends a rental log entry to the user's history
// POST /api/history
func (h *HistoryHandler) LogTransaction(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Unauthorized"})
	}

	var req LogTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Missing one or more required transaction details."})
	}

	entry, err := h.Service.Append(c.Context(), userID, req.ProviderName, req.PriceTRX, req.RentedEnergy, req.RentalDuration)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Missing one or more required transaction details."})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "User not found."})
		default:
			logger.Error("LogTransaction: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server Error while logging transaction."})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg":           "Transaction logged successfully.",
		"transactionId": entry.ID,
	})
}

// GetHistory returns the user's history, newest first
// GET /api/history
func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Unauthorized"})
	}

	entries, err := h.Service.List(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "User not found."})
		}
		logger.Error("GetHistory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server Error while fetching history."})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}
