package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/booking-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HostFilter narrows GetAll. Empty fields don't filter.
type HostFilter struct {
	// Name matches hosts whose name contains it.
	Name string
}

type HostRepository struct {
	db *gorm.DB
}

func NewHostRepository(db *gorm.DB) *HostRepository {
	return &HostRepository{db: db}
}

// markListingsLoaded turns a preloaded but empty relation into [] so it is
// serialized instead of omitted.
func markListingsLoaded(host *model.Host) {
	if host.Listings == nil {
		host.Listings = []model.Property{}
	}
}

// GetAll lists hosts with their listings.
func (r *HostRepository) GetAll(ctx context.Context, filter HostFilter) ([]model.Host, error) {
	query := r.db.WithContext(ctx).Model(&model.Host{}).Preload("Listings")

	if filter.Name != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, containsPattern(filter.Name))
	}

	hosts := []model.Host{}
	if err := query.Order("created_at ASC").Order("id ASC").Find(&hosts).Error; err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	for i := range hosts {
		markListingsLoaded(&hosts[i])
	}
	return hosts, nil
}

// GetByID returns the host with its listings, or nil when it doesn't exist.
func (r *HostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Host, error) {
	var host model.Host
	err := r.db.WithContext(ctx).Preload("Listings").Where(byID, id).Take(&host).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get host %s: %w", id, err)
	}
	markListingsLoaded(&host)
	return &host, nil
}

// GetByUsername returns the host owning username, or nil.
func (r *HostRepository) GetByUsername(ctx context.Context, username string) (*model.Host, error) {
	var host model.Host
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&host).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get host by username: %w", err)
	}
	return &host, nil
}

// Exists reports whether a host with id exists.
func (r *HostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Host{}).Where(byID, id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check host %s: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts host. ID, CreatedAt and UpdatedAt are filled in on success.
//
// The raw driver error is returned unwrapped by fmt so sqlerr can still
// classify constraint violations.
func (r *HostRepository) Create(ctx context.Context, host *model.Host) error {
	return r.db.WithContext(ctx).Omit("Listings").Create(host).Error
}

// Update applies changes (column name to value) to the host.
// It returns the updated host without listings, or nil when the host doesn't exist.
func (r *HostRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Host, error) {
	var updated *model.Host

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			result := tx.Model(&model.Host{}).Where(byID, id).Updates(changes)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return nil
			}
		}

		var host model.Host
		err := tx.Where(byID, id).Take(&host).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		updated = &host
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the host; its properties go with it (ON DELETE CASCADE).
// It returns false when no host had that id.
func (r *HostRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where(byID, id).Delete(&model.Host{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete host %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
