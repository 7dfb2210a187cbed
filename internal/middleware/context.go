package middleware

import (
	"github.com/deppfellow/booking-api/internal/logger"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UserRoleKey are the Echo context keys RequireAuth stores
	// the Clerk identity under.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id, method,
// path, ip, New Relic trace ids and, when known, the user.
//
// The logger is stored twice:
//   - in the Echo context, for handlers (GetLogger)
//   - in the request's context.Context, for services and the database layer
//     (zerolog.Ctx / logger.FromContext)
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a new ContextEnhancer using the app Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			// c.Path() is the route template ("/api/v1/hosts/:id"), not the raw URL.
			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			// Only set when auth middleware ran before this one. On the
			// protected routes RequireAuth runs later and adds the user itself.
			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			if userRole := getUserRole(c); userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			// Tag the Sentry hub too so error reports and logs share the request id.
			if hub := sentryecho.GetHubFromContext(c); hub != nil && requestID != "" {
				hub.ConfigureScope(func(scope *sentry.Scope) {
					scope.SetTag("request_id", requestID)
				})
			}

			setLogger(c, contextLogger)

			return next(c)
		}
	}
}

// setLogger makes l the request logger for handlers (GetLogger) and for
// everything reading the request's context.Context.
func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

func getUserRole(c echo.Context) string {
	if userRole, ok := c.Get(UserRoleKey).(string); ok {
		return userRole
	}
	return ""
}

// GetUserID reads the authenticated Clerk user id, "" for anonymous requests.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
