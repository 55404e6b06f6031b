package handlers

import "github.com/labstack/echo/v4"

// isHTMX reports whether the request was issued by htmx and expects a fragment.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
