package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Metrics records request count and latency per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err, status)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.RecordHTTPRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}

// statusFromError derives the status the global error handler will write,
// since the response is not committed yet when a handler returns an error.
func statusFromError(err error, fallback int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		if fallback < 400 {
			return 500
		}
		return fallback
	}
}
