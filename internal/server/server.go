package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/examwhispers/internal/app"
	"github.com/nfrund/examwhispers/internal/config"
	"github.com/nfrund/examwhispers/internal/handlers"
	"github.com/nfrund/examwhispers/internal/middleware"
)

// Dependencies holds what the HTTP server needs from the rest of the app.
type Dependencies struct {
	Config   config.Provider
	Services *app.Dependencies
	Echo     *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Services *app.Dependencies

	authHandler  *handlers.AuthHandler
	studyHandler *handlers.StudyHandler
}

// New creates a server with the ambient middleware installed. Routes are
// added by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Services == nil {
		return nil, errors.New("server: services are required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = deps.Services.Renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.BrowserSession)

	return &Server{
		E:            e,
		Cfg:          deps.Config,
		Services:     deps.Services,
		authHandler:  handlers.NewAuthHandler(deps.Services.Views),
		studyHandler: handlers.NewStudyHandler(deps.Services.Tracker, deps.Services.Tutor),
	}, nil
}

// setupErrorHandling logs unhandled errors with a stack trace before letting
// echo write the response. HTTP errors are expected and logged without one.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				logger.Error("Internal Server Error", "status", he.Code, "error", err)
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				slog.String("error", err.Error()),
				slog.String("stack_trace", string(debug.Stack())),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
