package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/booking-api/internal/config"
	"github.com/deppfellow/booking-api/internal/middleware"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler lets load balancers and uptime monitors verify the service
// is alive and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status plus the configured dependency checks
// (observability.health_checks).
//
// It returns 503 when the database is down. Redis only degrades the
// property cache and background jobs, so a failing redis check is reported
// but the endpoint still answers 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	cfg := h.checksConfig()

	if cfg.Enabled && slices.Contains(cfg.Checks, "database") && h.server.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		dbStart := time.Now()
		if err := h.server.DB.Ping(ctx); err != nil {
			isHealthy = false
			checks["database"] = unhealthyCheck(time.Since(dbStart), err)

			logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
			h.recordHealthCheckError("database", time.Since(dbStart), err)
		} else {
			checks["database"] = healthyCheck(time.Since(dbStart))
			logger.Debug().Dur("response_time", time.Since(dbStart)).Msg("database health check passed")
		}
	}

	if cfg.Enabled && slices.Contains(cfg.Checks, "redis") && h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = unhealthyCheck(time.Since(redisStart), err)

			logger.Error().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
			h.recordHealthCheckError("redis", time.Since(redisStart), err)
		} else {
			checks["redis"] = healthyCheck(time.Since(redisStart))
			logger.Debug().Dur("response_time", time.Since(redisStart)).Msg("redis health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) checksConfig() config.HealthChecksConfig {
	if obs := h.server.Config.Observability; obs != nil {
		return obs.HealthChecks
	}
	return config.DefaultObservabilityConfig().HealthChecks
}

func healthyCheck(elapsed time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
}

func unhealthyCheck(elapsed time.Duration, err error) map[string]interface{} {
	return map[string]interface{}{
		"status":        "unhealthy",
		"response_time": elapsed.String(),
		"error":         err.Error(),
	}
}

// recordHealthCheckError sends a HealthCheckError custom event to New Relic, if enabled.
func (h *HealthHandler) recordHealthCheckError(checkType string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       checkType + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
