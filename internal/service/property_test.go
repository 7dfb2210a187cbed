package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/booking-api/internal/model"
	"github.com/deppfellow/booking-api/internal/repository"
	"github.com/deppfellow/booking-api/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// memoryCache is an in-process PropertyCache that records its traffic.
type memoryCache struct {
	entries     map[uuid.UUID]model.Property
	hits        int
	invalidated []uuid.UUID
	failReads   bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[uuid.UUID]model.Property{}}
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID) (*model.Property, bool, error) {
	if c.failReads {
		return nil, false, errors.New("cache unavailable")
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &p, true, nil
}

func (c *memoryCache) Set(_ context.Context, p *model.Property) error {
	c.entries[p.ID] = *p
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type PropertyServiceSuite struct {
	suite.Suite

	ctx     context.Context
	hostID  uuid.UUID
	cache   *memoryCache
	service *PropertyService
}

func (s *PropertyServiceSuite) SetupTest() {
	db := testhelpers.NewTestDB(s.T())

	s.ctx = context.Background()
	s.hostID = testhelpers.CreateHost(s.T(), db, "maria").ID
	s.cache = newMemoryCache()
	s.service = NewPropertyService(
		repository.NewPropertyRepository(db.DB),
		repository.NewHostRepository(db.DB),
		s.cache,
		testhelpers.NewLogger(),
	)
}

func TestPropertyServiceSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceSuite))
}

func (s *PropertyServiceSuite) create(location string, price string) *model.Property {
	p, err := s.service.CreateProperty(s.ctx, &model.CreatePropertyPayload{
		HostID:        s.hostID.String(),
		Title:         "Stay in " + location,
		Location:      location,
		PricePerNight: model.NewNumber(decimal.RequireFromString(price)),
		MaxGuestCount: 2,
	})
	s.Require().NoError(err)
	return p
}

func (s *PropertyServiceSuite) TestCreateProperty() {
	p, err := s.service.CreateProperty(s.ctx, &model.CreatePropertyPayload{
		HostID:        s.hostID.String(),
		Title:         "Loft",
		Location:      "Lisbon",
		PricePerNight: model.NewNumber(decimal.RequireFromString("120.50")),
		Rating:        model.NewNumber(decimal.RequireFromString("4.5")),
	})
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, p.ID)
	s.Equal(s.hostID, p.HostID)
	s.True(decimal.RequireFromString("120.5").Equal(p.PricePerNight))
	s.Equal(4.5, p.Rating)
}

func (s *PropertyServiceSuite) TestCreateProperty_RatingDefaultsToZero() {
	p := s.create("Porto", "80")
	s.Equal(0.0, p.Rating)

	stored, err := s.service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(0.0, stored.Rating)
}

func (s *PropertyServiceSuite) TestCreateProperty_UnknownHost() {
	_, err := s.service.CreateProperty(s.ctx, &model.CreatePropertyPayload{
		HostID:        uuid.NewString(),
		Title:         "Orphan",
		Location:      "Nowhere",
		PricePerNight: model.NewNumber(decimal.NewFromInt(10)),
	})
	requireHTTPError(s.T(), err, http.StatusNotFound, "HOST_NOT_FOUND")
}

func (s *PropertyServiceSuite) TestGetProperties() {
	s.create("Lisbon", "80")
	s.create("Lisbon Riverside", "200")
	s.create("Porto", "60")

	maxPrice := decimal.NewFromInt(100)
	got, err := s.service.GetProperties(s.ctx, &model.GetPropertiesQuery{Location: "Lisbon", MaxPrice: &maxPrice})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Lisbon", got[0].Location)

	all, err := s.service.GetProperties(s.ctx, &model.GetPropertiesQuery{})
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *PropertyServiceSuite) TestGetProperty_UsesCache() {
	p := s.create("Lisbon", "80")

	first, err := s.service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(0, s.cache.hits)
	s.Contains(s.cache.entries, p.ID)

	second, err := s.service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(1, s.cache.hits)
	s.Equal(first.ID, second.ID)
}

func (s *PropertyServiceSuite) TestGetProperty_CacheFailureFallsBackToDatabase() {
	p := s.create("Lisbon", "80")
	s.cache.failReads = true

	got, err := s.service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
}

func (s *PropertyServiceSuite) TestGetProperty_NotFound() {
	_, err := s.service.GetProperty(s.ctx, uuid.New())
	requireHTTPError(s.T(), err, http.StatusNotFound, "PROPERTY_NOT_FOUND")
}

func (s *PropertyServiceSuite) TestUpdateProperty() {
	p := s.create("Lisbon", "80")
	_, err := s.service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)

	updated, err := s.service.UpdateProperty(s.ctx, &model.UpdatePropertyPayload{
		ID:            p.ID.String(),
		PricePerNight: model.NewNumber(decimal.RequireFromString("95")),
		Rating:        model.NewNumber(decimal.RequireFromString("3")),
	})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(95).Equal(updated.PricePerNight))
	s.Equal(3.0, updated.Rating)
	s.Equal("Lisbon", updated.Location)

	s.NotContains(s.cache.entries, p.ID, "stale cache entry is dropped")
	s.Equal([]uuid.UUID{p.ID}, s.cache.invalidated)
}

func (s *PropertyServiceSuite) TestUpdateProperty_NotFound() {
	_, err := s.service.UpdateProperty(s.ctx, &model.UpdatePropertyPayload{
		ID:    uuid.NewString(),
		Title: ptr("x"),
	})
	requireHTTPError(s.T(), err, http.StatusNotFound, "PROPERTY_NOT_FOUND")
	s.Empty(s.cache.invalidated)
}

func (s *PropertyServiceSuite) TestDeleteProperty() {
	p := s.create("Lisbon", "80")

	s.Require().NoError(s.service.DeleteProperty(s.ctx, p.ID))
	s.Equal([]uuid.UUID{p.ID}, s.cache.invalidated)

	err := s.service.DeleteProperty(s.ctx, p.ID)
	requireHTTPError(s.T(), err, http.StatusNotFound, "PROPERTY_NOT_FOUND")
}

func (s *PropertyServiceSuite) TestWithoutCache() {
	service := NewPropertyService(s.service.properties, s.service.hosts, nil, testhelpers.NewLogger())
	p := s.create("Lisbon", "80")

	got, err := service.GetProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.NoError(service.DeleteProperty(s.ctx, p.ID))
}
