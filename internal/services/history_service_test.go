package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/trx-sasta/backend/internal/models"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestAppendThenListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db)
	ctx := context.Background()
	user := createTestUser(t, db, "henry@example.com")

	first, err := svc.Append(ctx, user.ID, "TronSave", 6.4, 65000, "1 Day")
	if err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	// Ensure distinct timestamps at test speed
	db.Model(first).Update("logged_at", time.Now().Add(-time.Minute))

	second, err := svc.Append(ctx, user.ID, "Energy Hub", 7.1, 130000, "1 Day")
	if err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	entries, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Fatalf("expected newest entry first, got %s", entries[0].ProviderName)
	}
	if entries[0].Status != models.StatusLogged {
		t.Fatalf("expected status Logged, got %s", entries[0].Status)
	}
}

func TestAppendRequiresAllFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db)
	ctx := context.Background()
	user := createTestUser(t, db, "iris@example.com")

	cases := []struct {
		name         string
		provider     string
		price        float64
		energy       float64
		duration     string
	}{
		{"no provider", "", 6.4, 65000, "1 Day"},
		{"no price", "TronSave", 0, 65000, "1 Day"},
		{"no energy", "TronSave", 6.4, 0, "1 Day"},
		{"no duration", "TronSave", 6.4, 65000, ""},
	}
	for _, tc := range cases {
		if _, err := svc.Append(ctx, user.ID, tc.provider, tc.price, tc.energy, tc.duration); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("%s: expected ErrMissingFields, got %v", tc.name, err)
		}
	}

	entries, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected appends must not persist, found %d entries", len(entries))
	}
}

func TestHistoryUnknownUser(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Append(ctx, uuid.New(), "TronSave", 6.4, 65000, "1 Day"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("append: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.List(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("list: expected ErrUserNotFound, got %v", err)
	}
}
