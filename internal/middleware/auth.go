package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/examwhispers/internal/domain"
)

const UserContextKey = "user"

// CurrentUserLookup is the part of the identity provider the guard needs.
type CurrentUserLookup interface {
	CurrentUser(sessionID string) *domain.User
}

// Auth protects routes that require a signed-in session. It must run after
// BrowserSession.
func Auth(provider CurrentUserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := provider.CurrentUser(SessionID(c))
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Sign in first")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user stored by Auth, or nil.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
