package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Home is the ask-a-question page.
func Home(email string) cmp.Node {
	return g.Div(
		g.Class("bg-white shadow rounded-xl p-8"),
		g.H2(g.Class("text-xl font-bold mb-2"), cmp.Text("Welcome back")),
		cmp.If(email != "", g.P(g.Class("text-gray-600 mb-4"), cmp.Text("Signed in as "+email))),
		g.Form(
			hx.Post("/ask_ai"),
			hx.Target("#ask-answer"),
			hx.Swap("innerHTML"),
			g.Label(g.For("ask-question"), cmp.Text("Ask a question")),
			g.Input(g.ID("ask-question"), g.Name("question"), g.Type("text"), g.Required()),
			g.Button(g.Type("submit"), cmp.Text("Ask")),
		),
		g.Div(g.ID("ask-answer"), g.Class("mt-4")),
	)
}

// History lists past study sessions, loaded when the section is shown.
func History() cmp.Node {
	return g.Div(
		g.Class("bg-white shadow rounded-xl p-8"),
		g.H2(g.Class("text-xl font-bold mb-2"), cmp.Text("Study history")),
		g.Div(
			g.ID("history-list"),
			hx.Get("/history"),
			hx.Trigger("intersect"),
			hx.Swap("innerHTML"),
			cmp.Text("Loading…"),
		),
	)
}

// Quiz generates a multiple-choice question on a topic.
func Quiz() cmp.Node {
	return g.Div(
		g.Class("bg-white shadow rounded-xl p-8"),
		g.H2(g.Class("text-xl font-bold mb-2"), cmp.Text("Quiz")),
		g.Form(
			hx.Post("/generate_quiz"),
			hx.Target("#quiz-body"),
			hx.Swap("innerHTML"),
			g.Label(g.For("quiz-topic"), cmp.Text("Topic")),
			g.Input(g.ID("quiz-topic"), g.Name("topic_or_answer"), g.Type("text"), g.Required()),
			g.Button(g.Type("submit"), cmp.Text("Generate")),
		),
		g.Div(g.ID("quiz-body"), g.Class("mt-4")),
	)
}
