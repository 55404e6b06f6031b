package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/middleware"
	"github.com/nfrund/examwhispers/internal/study"
	"github.com/nfrund/examwhispers/web/src/templates/pages"
)

// StudyHandler serves the study helper API. Every endpoint answers JSON, or
// an HTML fragment when called from the page through htmx.
type StudyHandler struct {
	tracker *study.Tracker
	tutor   study.Tutor
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(tracker *study.Tracker, tutor study.Tutor) *StudyHandler {
	return &StudyHandler{tracker: tracker, tutor: tutor}
}

// History handles GET /history.
func (h *StudyHandler) History(c echo.Context) error {
	entries := h.tracker.All(c.Request().Context())
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", pages.HistoryList(entries))
	}
	return c.JSON(http.StatusOK, entries)
}

// Ask handles POST /ask_ai and logs the exchange.
func (h *StudyHandler) Ask(c echo.Context) error {
	var req AskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	answer := h.tutor.Ask(req.Question)
	if _, err := h.tracker.Log(c.Request().Context(), middleware.SessionID(c), req.Question, answer, nil); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to log question", "error", err)
	}

	if isHTMX(c) {
		return c.Render(http.StatusOK, "", pages.Answer(answer))
	}
	return c.JSON(http.StatusOK, AnswerResponse{Answer: answer})
}

// GenerateQuiz handles POST /generate_quiz.
func (h *StudyHandler) GenerateQuiz(c echo.Context) error {
	var req QuizRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	quiz, err := study.GenerateQuiz(h.tutor, req.TopicOrAnswer)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Tutor returned an unusable quiz", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, ErrorResponse{Code: "invalid_quiz", Message: "Generated quiz has an invalid format or invalid answer."})
	}
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", pages.QuizCard(quiz))
	}
	return c.JSON(http.StatusOK, quiz)
}

// LogQuizAttempt handles POST /log_quiz_attempt.
func (h *StudyHandler) LogQuizAttempt(c echo.Context) error {
	var req QuizAttemptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var attempt domain.QuizAttempt
	if req.QuizAttempt != nil {
		attempt = domain.QuizAttempt(*req.QuizAttempt)
	} else {
		attempt = study.Grade(domain.Quiz{Question: req.Question, Answer: req.Answer}, req.SelectedOption)
	}

	if _, err := h.tracker.Log(c.Request().Context(), middleware.SessionID(c), req.Question, req.Answer, &attempt); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to log quiz attempt", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "storage_error", Message: "Could not save the attempt."})
	}

	if isHTMX(c) {
		text := "✅ Correct!"
		if !attempt.IsCorrect {
			text = "❌ The answer was " + attempt.CorrectAnswer
		}
		return c.Render(http.StatusOK, "", g.Span(g.Class("quiz-result"), cmp.Text(text)))
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Quiz attempt logged successfully."})
}

// ClearHistory handles DELETE /history.
func (h *StudyHandler) ClearHistory(c echo.Context) error {
	if err := h.tracker.Clear(c.Request().Context()); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to clear history", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "storage_error", Message: "Could not clear the history."})
	}

	if isHTMX(c) {
		return c.Render(http.StatusOK, "", pages.HistoryList(nil))
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "All sessions cleared."})
}

// bindAndValidate returns an *echo.HTTPError carrying an ErrorResponse body.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Code: "invalid_body", Message: "Request body could not be read."})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrorResponse{Code: "validation_failed", Message: err.Error()})
	}
	return nil
}
