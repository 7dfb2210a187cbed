package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/booking-api/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertyFilter narrows GetAll. Zero values don't filter.
type PropertyFilter struct {
	// Location matches properties whose location contains it.
	Location string
	// MaxPricePerNight keeps properties costing at most this much per night.
	MaxPricePerNight *decimal.Decimal
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// withRelations preloads the reviews and bookings every read returns.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviews").Preload("Bookings")
}

// markRelationsLoaded is the counterpart of withRelations: a property read
// with its relations never carries a nil slice.
func markRelationsLoaded(property *model.Property) {
	if property.Reviews == nil {
		property.Reviews = []model.Review{}
	}
	if property.Bookings == nil {
		property.Bookings = []model.Booking{}
	}
}

// GetAll lists properties with their reviews and bookings.
func (r *PropertyRepository) GetAll(ctx context.Context, filter PropertyFilter) ([]model.Property, error) {
	query := r.db.WithContext(ctx).Model(&model.Property{}).Scopes(withRelations)

	if filter.Location != "" {
		query = query.Where(`location LIKE ? ESCAPE '\'`, containsPattern(filter.Location))
	}
	if filter.MaxPricePerNight != nil {
		query = query.Where("price_per_night <= ?", *filter.MaxPricePerNight)
	}

	properties := []model.Property{}
	if err := query.Order("created_at ASC").Order("id ASC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	for i := range properties {
		markRelationsLoaded(&properties[i])
	}
	return properties, nil
}

// GetByID returns the property with reviews and bookings, or nil when it doesn't exist.
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	err := r.db.WithContext(ctx).Scopes(withRelations).Where(byID, id).Take(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}
	markRelationsLoaded(&property)
	return &property, nil
}

// Create inserts property. Relations are never written from here.
func (r *PropertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Omit("Reviews", "Bookings").Create(property).Error
}

// Update applies changes (column name to value) to the property.
// It returns the updated property without relations, or nil when it doesn't exist.
func (r *PropertyRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Property, error) {
	var updated *model.Property

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			result := tx.Model(&model.Property{}).Where(byID, id).Updates(changes)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return nil
			}
		}

		var property model.Property
		err := tx.Where(byID, id).Take(&property).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		updated = &property
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the property with its reviews and bookings.
// It returns false when no property had that id.
func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where(byID, id).Delete(&model.Property{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete property %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
