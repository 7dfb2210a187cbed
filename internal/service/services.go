package service

import (
	"github.com/deppfellow/booking-api/internal/lib/cache"
	"github.com/deppfellow/booking-api/internal/lib/job"
	"github.com/deppfellow/booking-api/internal/repository"
	"github.com/deppfellow/booking-api/internal/server"
)

// Services groups every service so the handler layer receives one value.
type Services struct {
	Auth     *AuthService
	Job      *job.JobService
	Host     *HostService
	Property *PropertyService
}

// NewService wires the services to the repositories and the shared
// infrastructure held by s (Redis for the property cache, the job service
// for welcome emails).
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	var welcome HostWelcomeEnqueuer
	if s.Job != nil {
		welcome = s.Job
	}

	var propertyCache PropertyCache
	if s.Redis != nil && s.Config.Cache != nil && s.Config.Cache.Enabled {
		propertyCache = cache.NewPropertyCache(s.Redis, s.Config.Cache.PropertyTTL)
	}

	return &Services{
		Job:      s.Job,
		Auth:     authService,
		Host:     NewHostService(repos.Host, welcome, s.Logger),
		Property: NewPropertyService(repos.Property, repos.Host, propertyCache, s.Logger),
	}, nil
}
