package repository

import (
	"github.com/deppfellow/booking-api/internal/server"
)

// Repositories is a container for all repository instances.
//
// Services receive this single struct instead of one argument per repository,
// so adding a repository never changes the wiring signatures.
type Repositories struct {
	Host     *HostRepository
	Property *PropertyRepository
}

// NewRepositories constructs the repository container on the shared GORM handle (s.DB.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Host:     NewHostRepository(s.DB.DB),
		Property: NewPropertyRepository(s.DB.DB),
	}
}
