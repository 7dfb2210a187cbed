package middleware

import (
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/booking-api/internal/server"
)

// noop passes the request through unchanged.
func noop(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// TracingMiddleware owns the APM and error tracker middleware.
//
// nrApp is nil when New Relic is disabled; every method then degrades
// into a no-op. The same goes for Sentry.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a New Relic transaction per request and stores it
// in the request context, which is what makes newrelic.FromContext work later.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return noop
	}
	return nrecho.Middleware(tm.nrApp)
}

// SentryMiddleware attaches a per-request Sentry hub to the Echo context
// (read back with sentryecho.GetHubFromContext).
//
// Panics are re-raised after being reported so echo's Recover middleware and
// GlobalErrorHandler still produce the response.
func (tm *TracingMiddleware) SentryMiddleware() echo.MiddlewareFunc {
	if !tm.server.LoggerService.SentryEnabled() {
		return noop
	}
	return sentryecho.New(sentryecho.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})
}

// EnhanceTracing adds custom attributes to the New Relic transaction and
// notices returned errors on it.
//
// It must run after NewRelicMiddleware so a transaction exists.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			// User agent is high-cardinality; fine as an attribute, not as a metric name.
			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			if userID := GetUserID(c); userID != "" {
				txn.AddAttribute("user.id", userID)
			}

			err := next(c)

			// nrpkgerrors keeps the stack trace. The error is still returned so
			// GlobalErrorHandler writes the response.
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("http.status_code", statusFromError(err))
			} else {
				txn.AddAttribute("http.status_code", c.Response().Status)
			}

			return err
		}
	}
}
