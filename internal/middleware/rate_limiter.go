package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Credential endpoints allow a short burst of attempts per IP, then one
// attempt every six seconds.
var (
	DefaultAuthRate  = rate.Every(6 * time.Second)
	DefaultAuthBurst = 5
)

// RateLimiter limits each client IP to limit requests per second after an
// initial burst. It guards the credential endpoints against guessing.
func RateLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// In-memory counts are enough for a single instance.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 10 * time.Minute,
		}),

		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded", "client_ip", identifier)
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
