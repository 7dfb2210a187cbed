package model

import (
	"strings"

	"github.com/deppfellow/booking-api/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxRating = decimal.NewFromInt(5)

// GetPropertiesQuery filters GET /properties.
//
// PricePerNight arrives as a string and is parsed into MaxPrice by Validate;
// matching properties cost at most that much per night.
type GetPropertiesQuery struct {
	Location      string `query:"location" validate:"omitempty,max=255"`
	PricePerNight string `query:"pricePerNight"`

	MaxPrice *decimal.Decimal `query:"-"`
}

func (q *GetPropertiesQuery) Validate() error {
	if err := validation.Struct(q); err != nil {
		return err
	}

	raw := strings.TrimSpace(q.PricePerNight)
	if raw == "" {
		q.MaxPrice = nil
		return nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return validation.CustomValidationErrors{
			{Field: "pricePerNight", Message: "must be a number"},
		}
	}
	q.MaxPrice = &price
	return nil
}

// PropertyIDParam is bound from the :id path segment.
type PropertyIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (p *PropertyIDParam) Validate() error {
	return validation.Struct(p)
}

// UUID returns the parsed id. Only call it after Validate succeeded.
func (p *PropertyIDParam) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// CreatePropertyPayload is the body of POST /properties.
//
// PricePerNight and Rating accept either a JSON number or a numeric string;
// an empty rating is the same as none.
type CreatePropertyPayload struct {
	HostID        string           `json:"hostId" validate:"required,uuid"`
	Title         string           `json:"title" validate:"required,max=255"`
	Description   string           `json:"description"`
	Location      string           `json:"location" validate:"required,max=255"`
	PricePerNight Number `json:"pricePerNight"`
	BedroomCount  int    `json:"bedroomCount" validate:"min=0"`
	BathRoomCount int    `json:"bathRoomCount" validate:"min=0"`
	MaxGuestCount int    `json:"maxGuestCount" validate:"min=0"`
	Rating        Number `json:"rating"`
}

func (p *CreatePropertyPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return checkMoneyAndRating(p.PricePerNight, p.Rating, true)
}

// HostUUID returns the parsed owner id. Only call it after Validate succeeded.
func (p *CreatePropertyPayload) HostUUID() uuid.UUID {
	return uuid.MustParse(p.HostID)
}

// ToProperty builds the entity to insert. A missing rating becomes 0.
func (p *CreatePropertyPayload) ToProperty() *Property {
	property := &Property{
		HostID:        p.HostUUID(),
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		PricePerNight: p.PricePerNight.Value,
		BedroomCount:  p.BedroomCount,
		BathRoomCount: p.BathRoomCount,
		MaxGuestCount: p.MaxGuestCount,
	}
	if p.Rating.Set {
		property.Rating = p.Rating.Value.InexactFloat64()
	}
	return property
}

// UpdatePropertyPayload is the body of PUT /properties/:id. Nil and unset
// fields are left untouched.
type UpdatePropertyPayload struct {
	ID            string  `param:"id" json:"-" validate:"required,uuid"`
	Title         *string `json:"title" validate:"omitempty,max=255"`
	Description   *string `json:"description"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	PricePerNight Number  `json:"pricePerNight"`
	BedroomCount  *int    `json:"bedroomCount" validate:"omitempty,min=0"`
	BathRoomCount *int    `json:"bathRoomCount" validate:"omitempty,min=0"`
	MaxGuestCount *int    `json:"maxGuestCount" validate:"omitempty,min=0"`
	Rating        Number  `json:"rating"`
}

func (p *UpdatePropertyPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return checkMoneyAndRating(p.PricePerNight, p.Rating, false)
}

// UUID returns the parsed path id. Only call it after Validate succeeded.
func (p *UpdatePropertyPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// Changes returns the column/value pairs to write.
func (p *UpdatePropertyPayload) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Location != nil {
		changes["location"] = *p.Location
	}
	if p.PricePerNight.Set {
		changes["price_per_night"] = p.PricePerNight.Value
	}
	if p.BedroomCount != nil {
		changes["bedroom_count"] = *p.BedroomCount
	}
	if p.BathRoomCount != nil {
		changes["bath_room_count"] = *p.BathRoomCount
	}
	if p.MaxGuestCount != nil {
		changes["max_guest_count"] = *p.MaxGuestCount
	}
	if p.Rating.Set {
		changes["rating"] = p.Rating.Value.InexactFloat64()
	}
	return changes
}

func checkMoneyAndRating(price, rating Number, priceRequired bool) error {
	var errs validation.CustomValidationErrors
	switch {
	case !price.Set && priceRequired:
		errs = append(errs, validation.CustomValidationError{
			Field: "pricePerNight", Message: "is required",
		})
	case price.Invalid:
		errs = append(errs, validation.CustomValidationError{
			Field: "pricePerNight", Message: "must be a number",
		})
	case price.Set && price.Value.IsNegative():
		errs = append(errs, validation.CustomValidationError{
			Field: "pricePerNight", Message: "must not be negative",
		})
	}
	switch {
	case rating.Invalid:
		errs = append(errs, validation.CustomValidationError{
			Field: "rating", Message: "must be a number",
		})
	case rating.Set && (rating.Value.IsNegative() || rating.Value.GreaterThan(maxRating)):
		errs = append(errs, validation.CustomValidationError{
			Field: "rating", Message: "must be between 0 and 5",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
