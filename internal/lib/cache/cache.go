// Package cache is a small Redis-backed cache-aside store.
//
// Values are stored as JSON under "<prefix>:<id>" with a fixed TTL.
// A miss is reported as (false, nil); only Redis or decoding failures are errors.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/booking-api/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PropertyKeyPrefix namespaces property entries.
const PropertyKeyPrefix = "property"

// PropertyCache caches single-property lookups.
type PropertyCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewPropertyCache builds a cache on client. Entries expire after ttl.
func NewPropertyCache(client redis.Cmdable, ttl time.Duration) *PropertyCache {
	return &PropertyCache{client: client, ttl: ttl}
}

// PropertyKey is the Redis key for a property id.
func PropertyKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", PropertyKeyPrefix, id)
}

// Get loads the cached property. found is false on a miss.
func (c *PropertyCache) Get(ctx context.Context, id uuid.UUID) (property *model.Property, found bool, err error) {
	raw, err := c.client.Get(ctx, PropertyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", id, err)
	}

	property = &model.Property{}
	if err := json.Unmarshal(raw, property); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", id, err)
	}
	return property, true, nil
}

// Set stores property under its id.
func (c *PropertyCache) Set(ctx context.Context, property *model.Property) error {
	raw, err := json.Marshal(property)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", property.ID, err)
	}

	if err := c.client.Set(ctx, PropertyKey(property.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", property.ID, err)
	}
	return nil
}

// Invalidate drops the entry for id, if any.
func (c *PropertyCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, PropertyKey(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", id, err)
	}
	return nil
}
