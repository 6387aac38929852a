/**
 * @description
 * Rental history service.
 * Appends "Rent Now" log entries to an account's history and lists them
 * most-recent-first.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/trx-sasta/backend/internal/models"
	"gorm.io/gorm"
)

type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// Append logs a rental transaction for the given account.
// All fields are required; the entry starts in status Logged.
func (s *HistoryService) Append(ctx context.Context, userID uuid.UUID, providerName string, priceTRX, rentedEnergy float64, rentalDuration string) (*models.HistoryEntry, error) {
	if providerName == "" || rentalDuration == "" || priceTRX <= 0 || rentedEnergy <= 0 {
		return nil, ErrMissingFields
	}

	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	entry := models.HistoryEntry{
		UserID:         userID,
		ProviderName:   providerName,
		PriceTRX:       priceTRX,
		RentedEnergy:   rentedEnergy,
		RentalDuration: rentalDuration,
		Status:         models.StatusLogged,
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log transaction: %w", err)
	}
	return &entry, nil
}

// List returns the account's history, newest entry first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID) ([]models.HistoryEntry, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return entries, nil
}

func (s *HistoryService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.DB.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}
	return nil
}
