package pages

import (
	"fmt"
	"time"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/examwhispers/internal/domain"
)

// Answer renders a tutor reply.
func Answer(answer string) cmp.Node {
	return g.P(g.Class("answer"), cmp.Text(answer))
}

// HistoryList renders logged sessions, newest first.
func HistoryList(entries []domain.HistoryEntry) cmp.Node {
	if len(entries) == 0 {
		return g.P(g.Class("text-gray-500"), cmp.Text("No sessions logged yet."))
	}

	items := make([]cmp.Node, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		items = append(items, g.Li(
			g.Class("history-entry"),
			g.Time(cmp.Attr("datetime", e.Timestamp.Format(time.RFC3339)), cmp.Text(e.Timestamp.Format("Jan 2 15:04"))),
			g.P(g.Strong(cmp.Text(e.Question))),
			g.P(cmp.Text(e.Answer)),
			cmp.If(e.QuizAttempt != nil, quizAttempt(e.QuizAttempt)),
		))
	}
	return g.Ul(cmp.Group(items))
}

// HistoryPush replaces the contents of the history list out of band, for
// delivery over the websocket.
func HistoryPush(entries []domain.HistoryEntry) cmp.Node {
	return g.Div(
		g.ID("history-list"),
		hx.SwapOOB("innerHTML"),
		HistoryList(entries),
	)
}

func quizAttempt(a *domain.QuizAttempt) cmp.Node {
	result := "✅ correct"
	if !a.IsCorrect {
		result = fmt.Sprintf("❌ answered %q, correct was %q", a.SelectedOption, a.CorrectAnswer)
	}
	return g.P(g.Class("quiz-attempt"), cmp.Text(a.QuizQuestion+": "+result))
}

// QuizCard renders a generated question whose options post an attempt.
func QuizCard(q domain.Quiz) cmp.Node {
	options := make([]cmp.Node, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, g.Li(g.Form(
			hx.Post("/log_quiz_attempt"),
			hx.Target("#quiz-result"),
			hx.Swap("innerHTML"),
			g.Input(g.Type("hidden"), g.Name("question"), g.Value(q.Question)),
			g.Input(g.Type("hidden"), g.Name("answer"), g.Value(q.Answer)),
			g.Input(g.Type("hidden"), g.Name("selected_option"), g.Value(opt)),
			g.Button(g.Type("submit"), cmp.Text(opt)),
		)))
	}

	return g.Div(
		g.Class("quiz-card"),
		g.P(g.Class("font-bold"), cmp.Text(q.Question)),
		g.Ul(cmp.Group(options)),
		g.Div(g.ID("quiz-result")),
	)
}
