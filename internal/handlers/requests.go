package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SubmitRequest is the auth form. Emptiness is reported by the auth view
// itself, so the fields carry no validation tags.
type SubmitRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// AskRequest is the body of POST /ask_ai.
type AskRequest struct {
	Question string `form:"question" json:"question" validate:"required,max=2000"`
}

// QuizRequest is the body of POST /generate_quiz.
type QuizRequest struct {
	TopicOrAnswer string `form:"topic_or_answer" json:"topic_or_answer" validate:"required,max=4000"`
}

// QuizAttemptRequest is the body of POST /log_quiz_attempt. JSON clients send
// the graded attempt; the htmx quiz card sends the selected option instead.
type QuizAttemptRequest struct {
	Question       string              `form:"question" json:"question" validate:"required"`
	Answer         string              `form:"answer" json:"answer"`
	SelectedOption string              `form:"selected_option" json:"selected_option"`
	QuizAttempt    *QuizAttemptPayload `json:"quiz_attempt" validate:"required_without=SelectedOption"`
}

// QuizAttemptPayload mirrors domain.QuizAttempt with validation rules.
type QuizAttemptPayload struct {
	QuizQuestion   string `json:"quiz_question" validate:"required"`
	SelectedOption string `json:"selected_option" validate:"required"`
	CorrectAnswer  string `json:"correct_answer" validate:"required"`
	IsCorrect      bool   `json:"is_correct"`
}
