// Package handler is the HTTP layer, the first entry point for business
// logic after the router.
//
// It binds requests, validates input using the validation package and
// calls the appropriate service. It is the boundary between the HTTP
// request and the core business logic.
package handler

import (
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/deppfellow/booking-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Host     *HostHandler
	Property *PropertyHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Host:     NewHostHandler(s, services.Host),
		Property: NewPropertyHandler(s, services.Property),
	}
}
