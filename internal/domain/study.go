package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
)

// QuizOptions is the number of choices every quiz offers.
const QuizOptions = 4

// ErrInvalidQuiz reports a generated quiz that cannot be shown.
var ErrInvalidQuiz = errors.New("generated quiz has an invalid format or invalid answer")

var quizValidator = validator.New()

// QuizAttempt records one answer to a generated quiz question.
type QuizAttempt struct {
	QuizQuestion   string `json:"quiz_question"`
	SelectedOption string `json:"selected_option"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// HistoryEntry is a single logged study interaction.
type HistoryEntry struct {
	Timestamp   time.Time    `json:"timestamp"`
	Question    string       `json:"question"`
	Answer      string       `json:"answer"`
	QuizAttempt *QuizAttempt `json:"quiz_attempt,omitempty"`
}

// Quiz is a multiple-choice question produced from a topic.
type Quiz struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"len=4,dive,required"`
	Answer   string   `json:"answer" validate:"required"`
}

// Validate checks the quiz has a question, exactly QuizOptions non-empty
// options and an answer that is one of them.
func (q Quiz) Validate() error {
	if err := quizValidator.Struct(q); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuiz, err)
	}
	if !slices.Contains(q.Options, q.Answer) {
		return fmt.Errorf("%w: answer %q is not an option", ErrInvalidQuiz, q.Answer)
	}
	return nil
}
