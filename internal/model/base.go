// Package model holds the persisted entities (hosts, properties and the
// bookings and reviews attached to properties) together with the request
// payloads that create or change them.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Money is rendered as a JSON number ("pricePerNight": 120.5), not a string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base is embedded by every entity.
type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a random UUID unless the caller already set one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DeleteResponse is the body returned by successful deletes.
type DeleteResponse struct {
	Message string `json:"message"`
}
