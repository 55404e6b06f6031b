package layouts

import (
	cmp "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

const (
	htmxSrc   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSSrc = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
)

// Base wraps body in the HTML shell shared by every page.
func Base(title string, body ...cmp.Node) cmp.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []cmp.Node{
			g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
			g.Script(g.Src(htmxSrc)),
			g.Script(g.Src(htmxWSSrc)),
		},
		Body: []cmp.Node{
			g.Header(
				g.Class("p-4 border-b bg-white"),
				g.H1(g.Class("text-2xl font-bold text-indigo-700"), cmp.Text(AppName)),
			),
			g.Main(g.Class("container mx-auto p-6"), cmp.Group(body)),
		},
	})
}
