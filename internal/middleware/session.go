package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// SessionIDKey is where BrowserSession stores the session ID on the echo context.
	SessionIDKey = "session_id"

	browserSessionName = "examwhispers-session"
	sessionIDValue     = "sid"
)

// BrowserSession gives every browser a stable session ID kept in a signed
// cookie. One auth view exists per session ID. It must run after echo-contrib's
// session middleware.
func BrowserSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(browserSessionName, c)
		if err != nil {
			// A cookie signed with an old secret decodes with an error but
			// still yields a fresh session, which is what we want.
			FromContext(c.Request().Context()).Debug("Discarding unreadable session cookie", "error", err)
		}
		if sess == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
		}

		id, _ := sess.Values[sessionIDValue].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDValue] = id
			sess.Options.Path = "/"
			sess.Options.HttpOnly = true
			sess.Options.SameSite = http.SameSiteLaxMode
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return err
			}
		}

		c.Set(SessionIDKey, id)
		withLogger(c, FromContext(c.Request().Context()).With("session_id", id))
		return next(c)
	}
}

// SessionID returns the browser session ID set by BrowserSession.
func SessionID(c echo.Context) string {
	id, _ := c.Get(SessionIDKey).(string)
	return id
}
