package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is a listing owned by a Host.
type Property struct {
	Base
	HostID        uuid.UUID       `json:"hostId" gorm:"type:uuid;not null;index"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Location      string          `json:"location" gorm:"size:255;not null;index"`
	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:numeric(10,2);not null"`
	BedroomCount  int             `json:"bedroomCount" gorm:"not null;default:0"`
	BathRoomCount int             `json:"bathRoomCount" gorm:"not null;default:0"`
	MaxGuestCount int             `json:"maxGuestCount" gorm:"not null;default:0"`
	Rating        float64         `json:"rating" gorm:"not null;default:0"`

	// Reviews and Bookings are nil unless preloaded.
	Reviews  []Review  `json:"reviews" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Bookings []Booking `json:"bookings" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// MarshalJSON omits relations that were not loaded. Loaded but empty
// relations are rendered as [].
func (p Property) MarshalJSON() ([]byte, error) {
	type plainProperty Property
	out := struct {
		plainProperty
		Reviews  *[]Review  `json:"reviews,omitempty"`
		Bookings *[]Booking `json:"bookings,omitempty"`
	}{plainProperty: plainProperty(p)}
	if p.Reviews != nil {
		out.Reviews = &p.Reviews
	}
	if p.Bookings != nil {
		out.Bookings = &p.Bookings
	}
	return json.Marshal(out)
}

// Booking is a reservation of a Property. This API only reads bookings.
type Booking struct {
	Base
	UserID         uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	PropertyID     uuid.UUID       `json:"propertyId" gorm:"type:uuid;not null;index"`
	CheckinDate    time.Time       `json:"checkinDate" gorm:"not null"`
	CheckoutDate   time.Time       `json:"checkoutDate" gorm:"not null"`
	NumberOfGuests int             `json:"numberOfGuests" gorm:"not null"`
	TotalPrice     decimal.Decimal `json:"totalPrice" gorm:"type:numeric(10,2);not null"`
	BookingStatus  string          `json:"bookingStatus" gorm:"size:50;not null;default:'pending'"`
}

// Review is a guest rating of a Property. This API only reads reviews.
type Review struct {
	Base
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID `json:"propertyId" gorm:"type:uuid;not null;index"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `json:"comment" gorm:"type:text"`
}
