package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/skillhub/internal/middleware"
	"github.com/deppfellow/skillhub/internal/server"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by the database pool and by the redis client wrapper
// below.
type Pinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct {
	s *server.Server
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.s.Redis.Ping(ctx).Err()
}

// HealthHandler reports dependency status on /status.
type HealthHandler struct {
	Handler
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler probes the dependencies named in observability.health_checks.
// Redis is reported but does not fail the probe, since the cache degrades
// to the database.
func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := make(map[string]Pinger)
	if s.DB != nil {
		checks["database"] = s.DB.Pool
	}
	if s.Redis != nil {
		checks["redis"] = redisPinger{s: s}
	}

	timeout := 5 * time.Second
	if obs := s.Config.Observability; obs != nil {
		if obs.HealthChecks.Timeout > 0 {
			timeout = obs.HealthChecks.Timeout
		}
		if !obs.HealthChecks.Enabled {
			clear(checks)
		} else if len(obs.HealthChecks.Checks) > 0 {
			for name := range checks {
				if !slices.Contains(obs.HealthChecks.Checks, name) {
					delete(checks, name)
				}
			}
		}
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

// CheckHealth returns 200 when the database answers and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	for name, pinger := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := pinger.Ping(ctx)
		cancel()

		if err != nil {
			checks[name] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(checkStart).String(),
				"error":         err.Error(),
			}
			if name != "redis" {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")
			continue
		}

		checks[name] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
