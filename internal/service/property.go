package service

import (
	"context"

	"github.com/deppfellow/booking-api/internal/logger"
	"github.com/deppfellow/booking-api/internal/model"
	"github.com/deppfellow/booking-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PropertyStore is the persistence the property service needs.
// *repository.PropertyRepository implements it.
type PropertyStore interface {
	GetAll(ctx context.Context, filter repository.PropertyFilter) ([]model.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Property, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// HostChecker answers whether a host exists.
type HostChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// PropertyCache is a cache-aside store for single-property reads.
// *cache.PropertyCache implements it.
type PropertyCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Property, bool, error)
	Set(ctx context.Context, property *model.Property) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type PropertyService struct {
	properties PropertyStore
	hosts      HostChecker
	cache      PropertyCache
	logger     *zerolog.Logger
}

// NewPropertyService builds the property service. cache may be nil to disable caching.
func NewPropertyService(properties PropertyStore, hosts HostChecker, cache PropertyCache, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		hosts:      hosts,
		cache:      cache,
		logger:     logger,
	}
}

// GetProperties lists properties filtered by location substring and maximum nightly price.
func (s *PropertyService) GetProperties(ctx context.Context, query *model.GetPropertiesQuery) ([]model.Property, error) {
	return s.properties.GetAll(ctx, repository.PropertyFilter{
		Location:         query.Location,
		MaxPricePerNight: query.MaxPrice,
	})
}

// GetProperty returns one property with reviews and bookings, from cache when possible.
// Cache failures only cost a database read.
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	log := logger.FromContext(ctx, s.logger)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("property_id", id.String()).Msg("property cache read failed")
		} else if found {
			return cached, nil
		}
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errPropertyNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, property); err != nil {
			log.Warn().Err(err).Str("property_id", id.String()).Msg("property cache write failed")
		}
	}

	return property, nil
}

// CreateProperty adds a listing to an existing host.
func (s *PropertyService) CreateProperty(ctx context.Context, payload *model.CreatePropertyPayload) (*model.Property, error) {
	hostID := payload.HostUUID()

	exists, err := s.hosts.Exists(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errHostNotFound
	}

	property := payload.ToProperty()
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info().
		Str("property_id", property.ID.String()).
		Str("host_id", hostID.String()).
		Msg("property created")

	return property, nil
}

// UpdateProperty applies a partial update and drops the cached copy.
func (s *PropertyService) UpdateProperty(ctx context.Context, payload *model.UpdatePropertyPayload) (*model.Property, error) {
	id := payload.UUID()

	property, err := s.properties.Update(ctx, id, payload.Changes())
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errPropertyNotFound
	}

	s.invalidate(ctx, id)

	logger.FromContext(ctx, s.logger).Info().
		Str("property_id", id.String()).
		Msg("property updated")

	return property, nil
}

// DeleteProperty removes a property with its reviews and bookings.
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.properties.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errPropertyNotFound
	}

	s.invalidate(ctx, id)

	logger.FromContext(ctx, s.logger).Info().
		Str("property_id", id.String()).
		Msg("property deleted")
	return nil
}

func (s *PropertyService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		// A stale entry lives at most one TTL.
		logger.FromContext(ctx, s.logger).Warn().
			Err(err).
			Str("property_id", id.String()).
			Msg("property cache invalidation failed")
	}
}
