package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/booking-api/internal/errs"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies Clerk session tokens.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth is an Echo middleware that enforces authentication using Clerk.
//
//  1. Clerk's net/http middleware reads and verifies "Authorization: Bearer <token>".
//  2. A missing or invalid token is answered with a 401 in the usual error shape.
//  3. Otherwise the session claims are copied into the Echo context
//     (user_id, user_role, permissions), the request logger and the Sentry
//     scope are tagged with the user, and the request continues.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		),
	)(func(c echo.Context) error {
		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Msg("could not get session claims from context")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.ActiveOrganizationRole)
		c.Set("permissions", claims.Claims.ActiveOrganizationPermissions)

		// EnhanceContext ran before the user was known.
		userLogger := GetLogger(c).With().Str("user_id", claims.Subject)
		if claims.ActiveOrganizationRole != "" {
			userLogger = userLogger.Str("user_role", claims.ActiveOrganizationRole)
		}
		setLogger(c, userLogger.Logger())

		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.Scope().SetUser(sentry.User{ID: claims.Subject})
		}

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Msg("user authenticated successfully")

		return next(c)
	})
}

// writeUnauthorized runs outside Echo (inside Clerk's handler), so it writes
// the JSON itself instead of returning an error.
func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false)); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "RequireAuth").
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Msg("rejected request without a valid session")
}
