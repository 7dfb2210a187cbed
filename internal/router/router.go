// Package router builds the Echo instance.
//
// It registers the middleware chain and the route groups, mapping paths to
// their handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/booking-api/internal/handler"
	"github.com/deppfellow/booking-api/internal/middleware"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the fully wired Echo instance.
//
// Middleware order matters:
//   - request id first, so every later layer (logs, traces, error reports) can use it
//   - tracing and Sentry before the context enhancer, which reads the
//     New Relic transaction and tags the Sentry hub
//   - the request logger wraps everything that can fail
//   - Recover is innermost so a handler panic becomes an ordinary error
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	m := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.Tracing.SentryMiddleware(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.RateLimit.Limit(),
		m.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerHostRoutes(v1, h.Host, m.Auth)
	registerPropertyRoutes(v1, h.Property, m.Auth)

	return router
}

func registerHostRoutes(g *echo.Group, h *handler.HostHandler, auth *middleware.AuthMiddleware) {
	hosts := g.Group("/hosts")

	hosts.GET("", handler.Handle(h.GetHosts, http.StatusOK))
	hosts.GET("/:id", handler.Handle(h.GetHost, http.StatusOK))

	hosts.POST("", handler.Handle(h.CreateHost, http.StatusCreated), auth.RequireAuth)
	hosts.PUT("/:id", handler.Handle(h.UpdateHost, http.StatusOK), auth.RequireAuth)
	hosts.DELETE("/:id", handler.Handle(h.DeleteHost, http.StatusOK), auth.RequireAuth)
}

func registerPropertyRoutes(g *echo.Group, h *handler.PropertyHandler, auth *middleware.AuthMiddleware) {
	properties := g.Group("/properties")

	properties.GET("", handler.Handle(h.GetProperties, http.StatusOK))
	properties.GET("/:id", handler.Handle(h.GetProperty, http.StatusOK))

	properties.POST("", handler.Handle(h.CreateProperty, http.StatusCreated), auth.RequireAuth)
	properties.PUT("/:id", handler.Handle(h.UpdateProperty, http.StatusOK), auth.RequireAuth)
	properties.DELETE("/:id", handler.Handle(h.DeleteProperty, http.StatusOK), auth.RequireAuth)
}
