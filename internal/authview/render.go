package authview

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/view"
	"github.com/nfrund/examwhispers/web/src/templates/pages"
)

// Element ids shared by the render and the htmx targets.
const (
	ViewID    = "auth-view"
	NoticesID = "notices"
)

// Render draws the auth view for a state. It is a pure function of s; notices
// are drawn separately by RenderNotices.
func Render(s ViewState) cmp.Node {
	return render(s, false)
}

// RenderPush is Render marked for an out-of-band swap, as sent over the websocket.
func RenderPush(s ViewState) cmp.Node {
	return render(s, true)
}

// RenderFragment is the htmx response to a gesture: the view plus its notices.
func RenderFragment(s ViewState) cmp.Node {
	return cmp.Group{Render(s), renderNotices(s.Notices, true)}
}

// RenderPage is the body of a full page load.
func RenderPage(s ViewState) cmp.Node {
	return g.Div(
		hx.Ext("ws"),
		cmp.Attr("ws-connect", "/ws/auth"),
		renderNotices(s.Notices, false),
		Render(s),
	)
}

// RenderNotices draws the notification area.
func RenderNotices(notices []domain.Notice) cmp.Node {
	return renderNotices(notices, false)
}

func render(s ViewState, oob bool) cmp.Node {
	return g.Div(
		g.ID(ViewID),
		cmp.If(oob, hx.SwapOOB("true")),
		topBar(s),
		sidebar(s),
		loginSection(s),
		pageSections(s),
	)
}

func topBar(s ViewState) cmp.Node {
	return g.Nav(
		g.Class("top-bar"),
		g.A(
			g.ID("login-btn"),
			c.Classes{"btn": true, "hidden": s.SignedIn()},
			g.Href("#login-section"),
			cmp.Text("Login"),
		),
		cmp.If(s.SignedIn(), g.Span(g.Class("user-email"), cmp.Text(userEmail(s.User)))),
		logoutForm("logout-btn", s.SignedIn()),
	)
}

func sidebar(s ViewState) cmp.Node {
	links := make([]cmp.Node, 0, len(view.PageNames))
	for _, name := range view.PageNames {
		links = append(links, g.Li(g.Button(
			g.Type("button"),
			c.Classes{"nav-link": true, "active": s.ActivePage == name},
			hx.Get("/pages/"+name),
			hx.Target("#"+ViewID),
			hx.Swap("outerHTML"),
			cmp.Text(view.PageTitle(name)),
		)))
	}

	return g.Aside(
		c.Classes{"sidebar": true, "hidden": !s.SignedIn()},
		g.Ul(cmp.Group(links)),
		logoutForm("sidebar-logout-btn", s.SignedIn()),
	)
}

// logoutForm works with and without htmx: a plain post falls back to a redirect.
func logoutForm(id string, visible bool) cmp.Node {
	return g.Form(
		c.Classes{"inline": true, "hidden": !visible},
		g.Method("post"),
		g.Action("/auth/logout"),
		hx.Post("/auth/logout"),
		hx.Target("#"+ViewID),
		hx.Swap("outerHTML"),
		g.Button(g.ID(id), g.Type("submit"), g.Class("btn"), cmp.Text("Logout")),
	)
}

func loginSection(s ViewState) cmp.Node {
	l := s.Labels()

	return g.Section(
		g.ID("login-section"),
		c.Classes{"login-section": true, "hidden": !s.AuthFormVisible},
		g.Form(
			g.Class("auth-form bg-white shadow rounded-xl p-8"),
			g.Method("post"),
			g.Action("/auth/submit"),
			hx.Post("/auth/submit"),
			hx.Target("#"+ViewID),
			hx.Swap("outerHTML"),
			g.H2(g.ID("auth-title"), cmp.Text(l.Title)),
			g.Input(g.ID("login-email"), g.Name("email"), g.Type("email"), g.Placeholder("Email"), cmp.Attr("autocomplete", "email")),
			g.Input(g.ID("login-password"), g.Name("password"), g.Type("password"), g.Placeholder("Password"), cmp.Attr("autocomplete", passwordAutocomplete(s.Mode))),
			g.Button(
				g.ID("auth-action-btn"),
				g.Type("submit"),
				g.Class("btn btn-primary"),
				cmp.If(s.Submitting, g.Disabled()),
				cmp.Text(l.Submit),
			),
			g.P(
				g.Class("toggle-row"),
				g.Span(g.ID("toggle-message"), cmp.Text(l.Prompt)),
				cmp.Text(" "),
				g.Button(
					g.ID("toggle-auth-mode"),
					g.Type("submit"),
					cmp.Attr("formaction", "/auth/toggle"),
					cmp.Attr("formnovalidate"),
					hx.Post("/auth/toggle"),
					g.Class("link"),
					cmp.Text(l.Toggle),
				),
			),
		),
	)
}

func pageSections(s ViewState) cmp.Node {
	sections := make([]cmp.Node, 0, len(view.PageNames))
	for _, name := range view.PageNames {
		sections = append(sections, g.Section(
			g.ID(view.PageID(name)),
			c.Classes{"page": true, "active": s.ActivePage == name},
			cmp.If(s.SignedIn(), pageContent(name, s.User)),
		))
	}
	return cmp.Group(sections)
}

func pageContent(name string, user *domain.User) cmp.Node {
	switch name {
	case view.PageHistory:
		return pages.History()
	case view.PageQuiz:
		return pages.Quiz()
	default:
		return pages.Home(userEmail(user))
	}
}

func renderNotices(notices []domain.Notice, oob bool) cmp.Node {
	items := make([]cmp.Node, 0, len(notices))
	for _, n := range notices {
		items = append(items, g.Div(
			c.Classes{"notice": true, "notice-" + string(n.Kind): true},
			g.Role("status"),
			cmp.Text(n.Text),
		))
	}

	return g.Div(
		g.ID(NoticesID),
		cmp.If(oob, hx.SwapOOB("true")),
		g.Aria("live", "polite"),
		cmp.Group(items),
	)
}

func passwordAutocomplete(m FormMode) string {
	if m == ModeSignUp {
		return "new-password"
	}
	return "current-password"
}

func userEmail(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}
