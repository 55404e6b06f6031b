package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/examwhispers/internal/middleware"
	"github.com/nfrund/examwhispers/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(middleware.DefaultAuthRate, middleware.DefaultAuthBurst)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", s.authHandler.Page)
	s.E.POST("/auth/submit", s.authHandler.Submit, rateLimiter)
	s.E.POST("/auth/toggle", s.authHandler.Toggle)
	s.E.POST("/auth/logout", s.authHandler.Logout)
	s.E.GET("/pages/:name", s.authHandler.Navigate)
	s.E.GET("/ws/auth", s.Services.Bridge.Handler())

	protected := s.E.Group("", middleware.Auth(s.Services.Provider))
	protected.GET("/history", s.studyHandler.History)
	protected.DELETE("/history", s.studyHandler.ClearHistory)
	protected.POST("/ask_ai", s.studyHandler.Ask)
	protected.POST("/generate_quiz", s.studyHandler.GenerateQuiz)
	protected.POST("/log_quiz_attempt", s.studyHandler.LogQuizAttempt)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
