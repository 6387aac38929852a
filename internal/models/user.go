/**
 * @description
 * User and rental history database models.
 * Map to the 'users' and 'history_entries' tables in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 *
 * @notes
 * - Passwords are stored as bcrypt hashes only; the hash never serializes to JSON.
 * - History is most-recent-first: readers order by logged_at DESC, id DESC.
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryStatus tracks the lifecycle of a logged rental.
type HistoryStatus string

const (
	// StatusLogged is set when the user clicks "Rent Now". No code path
	// transitions it further; reconciliation against the TRON network would.
	StatusLogged  HistoryStatus = "Logged"
	StatusSuccess HistoryStatus = "Success"
	StatusFailed  HistoryStatus = "Failed"
)

// User represents a registered user in the system
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`

	History []HistoryEntry `gorm:"foreignKey:UserID" json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}

// BeforeCreate ensures UUID is generated if not present
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// HistoryEntry represents one logged rental transaction.
// JSON field names match the original frontend contract.
type HistoryEntry struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID         uuid.UUID     `gorm:"type:uuid;index;not null" json:"-"`
	ProviderName   string        `gorm:"not null" json:"providerName"`
	PriceTRX       float64       `gorm:"column:price_trx" json:"price_TRX"`
	RentedEnergy   float64       `gorm:"column:rented_energy" json:"rentedEnergy"`
	RentalDuration string        `json:"rentalDuration"`
	LoggedAt       time.Time     `gorm:"column:logged_at;index" json:"date"`
	Status         HistoryStatus `gorm:"default:Logged" json:"status"`
}

// TableName overrides the table name used by HistoryEntry to `history_entries`
func (HistoryEntry) TableName() string {
	return "history_entries"
}

// BeforeCreate ensures UUID and timestamp are set
func (e *HistoryEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now()
	}
	return
}
