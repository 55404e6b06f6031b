package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/examwhispers/internal/authview"
	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/middleware"
	"github.com/nfrund/examwhispers/internal/view"
	"github.com/nfrund/examwhispers/web/src/templates/layouts"
)

// AuthHandler turns auth-view gestures into controller calls.
type AuthHandler struct {
	views *authview.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(views *authview.Manager) *AuthHandler {
	return &AuthHandler{views: views}
}

func (h *AuthHandler) session(c echo.Context) *authview.Session {
	return h.views.Get(middleware.SessionID(c))
}

// Page renders the full page (GET /). Flashes left by a non-htmx redirect are
// shown ahead of any queued notices.
func (h *AuthHandler) Page(c echo.Context) error {
	s := h.session(c)

	state := s.View()
	state.Notices = append(view.GetFlashData(c).Notices(), state.Notices...)

	page := layouts.Base(pageTitle(state), authview.RenderPage(state))
	return c.Render(http.StatusOK, "", view.AdaptGomponentToTempl(page))
}

// Submit handles POST /auth/submit. The response waits for the outcome so
// the fragment it returns already reflects it.
func (h *AuthHandler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	logger := middleware.FromContext(c.Request().Context())
	s := h.session(c)

	done, err := s.Controller.Submit(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return h.respond(c, s)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		logger.Info("Ignoring submit while another is in flight")
		return h.respond(c, s)
	case err != nil:
		return err
	}

	select {
	case outcome := <-done:
		if outcome.Err != nil {
			logger.Warn("Auth submission failed", "error", outcome.Err)
		}
	case <-c.Request().Context().Done():
		// The outcome still lands in the session's notices for the next render.
		return nil
	}
	return h.respond(c, s)
}

// Toggle handles POST /auth/toggle.
func (h *AuthHandler) Toggle(c echo.Context) error {
	s := h.session(c)
	s.Controller.ToggleMode()
	return h.respond(c, s)
}

// Logout handles POST /auth/logout, shared by both logout buttons.
func (h *AuthHandler) Logout(c echo.Context) error {
	s := h.session(c)

	select {
	case <-s.Controller.Logout(c.Request().Context()):
	case <-c.Request().Context().Done():
		return nil
	}
	return h.respond(c, s)
}

// Navigate handles GET /pages/:name.
func (h *AuthHandler) Navigate(c echo.Context) error {
	s := h.session(c)

	err := s.Controller.Navigate(c.Param("name"))
	switch {
	case errors.Is(err, domain.ErrUnknownPage):
		return echo.NewHTTPError(http.StatusNotFound, "unknown page")
	case errors.Is(err, domain.ErrNotSignedIn):
		// Signed-out sessions just get the login form back.
	case err != nil:
		return err
	}
	return h.respond(c, s)
}

// respond returns the fragment to htmx, or flashes the notices and redirects
// a plain form post back to the page.
func (h *AuthHandler) respond(c echo.Context, s *authview.Session) error {
	state := s.View()
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", authview.RenderFragment(state))
	}

	for _, n := range state.Notices {
		view.SetFlashNotice(c, n)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func pageTitle(s authview.ViewState) string {
	if s.AuthFormVisible || s.ActivePage == "" {
		return s.Labels().Title
	}
	return view.PageTitle(s.ActivePage)
}
