/**
 * @description
 * Price observation database model.
 * Maps to the 'price_observations' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 *
 * @notes
 * - Append-only: the aggregator only inserts, nothing updates or deletes rows.
 * - price_TRX_per_65k is the cost in TRX of renting 65k energy for the duration.
 */

package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceObservation represents one fetched (simulated) provider price point
type PriceObservation struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderName     string    `gorm:"index;not null" json:"providerName"`
	PriceTRXPer65k   float64   `gorm:"column:price_trx_per_65k;not null" json:"price_TRX_per_65k"`
	RentalDuration   string    `json:"rentalDuration"`
	ReliabilityScore float64   `json:"reliabilityScore"` // 0 to 5
	SourceURL        string    `gorm:"column:source_url" json:"sourceUrl"`
	FetchedAt        time.Time `gorm:"column:fetched_at;index" json:"fetchedAt"`
}

// TableName overrides the table name used by PriceObservation to `price_observations`
func (PriceObservation) TableName() string {
	return "price_observations"
}

// BeforeCreate stamps the fetch time if the caller didn't
func (o *PriceObservation) BeforeCreate(tx *gorm.DB) (err error) {
	if o.FetchedAt.IsZero() {
		o.FetchedAt = time.Now()
	}
	return
}
