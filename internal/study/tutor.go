package study

import (
	"fmt"
	"strings"

	"github.com/nfrund/examwhispers/internal/domain"
)

// Tutor answers questions and writes quizzes. The built-in tutor is
// canned; it stands in for a language-model backend.
type Tutor interface {
	Ask(question string) string
	GenerateQuiz(topicOrAnswer string) domain.Quiz
}

// CannedTutor returns fixed content about air.
type CannedTutor struct{}

func (CannedTutor) Ask(question string) string {
	return fmt.Sprintf("Air is a mixture of gases like nitrogen and oxygen. You asked: '%s'", strings.TrimSpace(question))
}

func (CannedTutor) GenerateQuiz(string) domain.Quiz {
	return domain.Quiz{
		Question: "What is the main component of air?",
		Options:  []string{"Nitrogen", "Oxygen", "Carbon Dioxide", "Hydrogen"},
		Answer:   "Nitrogen",
	}
}

// GenerateQuiz asks tutor for a quiz and rejects one that fails
// domain.Quiz.Validate, so a malformed quiz never reaches the page.
func GenerateQuiz(tutor Tutor, topicOrAnswer string) (domain.Quiz, error) {
	quiz := tutor.GenerateQuiz(topicOrAnswer)
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// Grade builds the attempt record for a selected option.
func Grade(q domain.Quiz, selected string) domain.QuizAttempt {
	return domain.QuizAttempt{
		QuizQuestion:   q.Question,
		SelectedOption: selected,
		CorrectAnswer:  q.Answer,
		IsCorrect:      selected == q.Answer,
	}
}
