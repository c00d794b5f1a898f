package middleware

import (
	"time"

	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/metrics"
	"github.com/deppfellow/skillhub/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const msgTooManyRequests = "Too many requests, try again later"

// RateLimitMiddleware throttles the public auth endpoints per client IP.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware returns a RateLimitMiddleware configured from s.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Auth limits each IP to auth.sign_in_rate_limit requests per second with a
// small burst. A zero limit disables throttling.
func (r *RateLimitMiddleware) Auth() echo.MiddlewareFunc {
	limit := r.server.Config.Auth.SignInRateLimit
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     max(1, int(limit)*2),
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Forbidden", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			return errs.NewTooManyRequestsError(msgTooManyRequests)
		},
	})
}

// RecordRateLimitHit counts a rejected request and logs it.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	metrics.RecordRateLimited(endpoint)
	r.server.Logger.Warn().Str("endpoint", endpoint).Msg("rate limit hit")
}
