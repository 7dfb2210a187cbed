package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/booking-api/internal/server"
)

// AuthService configures the Clerk SDK. Session tokens on mutating routes
// are then verified by middleware.AuthMiddleware.
type AuthService struct {
	server *server.Server
}

// NewAuthService sets the Clerk secret key process-wide.
func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
