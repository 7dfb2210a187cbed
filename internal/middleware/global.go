package middleware

import (
	"net/http"

	"github.com/deppfellow/booking-api/internal/errs"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/deppfellow/booking-api/internal/sqlerr"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// It is a struct so every middleware can read shared app dependencies
// (config, logger service) from *server.Server.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware restricted to the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger produces one "API" log line per request, with severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the response is written later by
			// GlobalErrorHandler, so v.Status still reads 200. Derive the status
			// from the error instead.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// statusFromError predicts the status GlobalErrorHandler will answer with.
func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// Recover turns handler panics into errors, which then reach GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds the standard security response headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware, and every recovered panic,
// ends up here:
//   - *errs.HTTPError is rendered as-is
//   - echo's own errors are mapped onto the same JSON shape ("Route not found" for 404)
//   - anything else goes through sqlerr.HandleError, which recognises database
//     failures and otherwise yields a generic 500
//
// Server-side failures (5xx) are reported to Sentry and never leak their
// real message to the client.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Keep the original error for logs and error reports; the client may
	// get a sanitized version.
	originalErr := err

	response := toHTTPError(err)

	if response.Status >= http.StatusInternalServerError {
		response.Message = errs.InternalServerErrorMessage
		response.Override = false
		response.Errors = nil
		response.Action = nil
		global.reportError(c, originalErr)
	}

	logger := *GetLogger(c)

	var event *zerolog.Event
	if response.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}

	event.
		Err(originalErr).
		Int("status", response.Status).
		Str("error_code", response.Code).
		Msg(response.Message)

	if c.Response().Committed {
		return
	}

	// HEAD responses carry no body.
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(response.Status)
		return
	}

	_ = c.JSON(response.Status, response)
}

// toHTTPError classifies err into the response that will be written.
// The result is always a fresh value, safe to modify.
func toHTTPError(err error) errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return *httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return *errs.NewNotFoundError("Route not found", false, nil)
		}

		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}

		return errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	// Likely a driver / ORM error, or something nobody classified.
	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return *httpErr
	}

	return *errs.NewInternalServerError()
}

// reportError sends err to Sentry, tagged with the request's correlation fields.
//
// sentryecho puts a per-request hub on the context; without it (Sentry
// middleware not installed) the global hub is used, and nothing is sent when
// Sentry is disabled.
func (global *GlobalMiddlewares) reportError(c echo.Context, err error) {
	hub := sentryecho.GetHubFromContext(c)
	if hub == nil {
		if !global.server.LoggerService.SentryEnabled() {
			return
		}
		hub = sentry.CurrentHub().Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if requestID := GetRequestID(c); requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		if userID := GetUserID(c); userID != "" {
			scope.SetUser(sentry.User{ID: userID})
		}
		scope.SetTag("route", c.Path())
		scope.SetRequest(c.Request())
		hub.CaptureException(err)
	})
}
