package authview

import (
	"bytes"
	"testing"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
)

func renderString(t *testing.T, n cmp.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestRender_Labels(t *testing.T) {
	login := renderString(t, Render(ViewState{Mode: ModeLogin, AuthFormVisible: true}))
	assert.Contains(t, login, `<h2 id="auth-title">Login</h2>`)
	assert.Contains(t, login, `<span id="toggle-message">Don&#39;t have an account?</span>`)
	assert.Contains(t, login, `>Sign up</button>`)
	assert.Contains(t, login, `autocomplete="current-password"`)

	signUp := renderString(t, Render(ViewState{Mode: ModeSignUp, AuthFormVisible: true}))
	assert.Contains(t, signUp, `<h2 id="auth-title">Sign Up</h2>`)
	assert.Contains(t, signUp, `<span id="toggle-message">Already have an account?</span>`)
	assert.Contains(t, signUp, `>Sign Up</button>`)
	assert.Contains(t, signUp, `autocomplete="new-password"`)
}

func TestRender_SignedOut(t *testing.T) {
	html := renderString(t, Render(ViewState{AuthFormVisible: true}))

	assert.Contains(t, html, `<div id="auth-view">`)
	assert.Contains(t, html, `<section id="login-section" class="login-section">`)
	assert.Contains(t, html, `<a id="login-btn" class="btn" href="#login-section">`)
	assert.Contains(t, html, `<aside class="hidden sidebar">`)
	for _, name := range view.PageNames {
		assert.Contains(t, html, `<section id="`+view.PageID(name)+`" class="page">`, "no page is active")
	}
	assert.NotContains(t, html, "hx-swap-oob")
}

func TestRender_SignedIn(t *testing.T) {
	html := renderString(t, Render(ViewState{
		User:       &domain.User{UID: "u1", Email: "a@b.co"},
		ActivePage: view.PageHome,
	}))

	assert.Contains(t, html, `<section id="login-section" class="hidden login-section">`)
	assert.Contains(t, html, `<a id="login-btn" class="btn hidden" href="#login-section">`)
	assert.Contains(t, html, `id="logout-btn"`)
	assert.Contains(t, html, `id="sidebar-logout-btn"`)
	assert.Contains(t, html, `<aside class="sidebar">`)
	assert.Contains(t, html, `<section id="page-home" class="active page">`)
	assert.Contains(t, html, `<section id="page-quiz" class="page">`)
	assert.Contains(t, html, "Signed in as a@b.co")
}

func TestRender_SubmittingDisablesButton(t *testing.T) {
	html := renderString(t, Render(ViewState{AuthFormVisible: true, Submitting: true}))
	assert.Contains(t, html, `class="btn btn-primary" disabled>Login</button>`)
}

func TestRenderPushAndFragment(t *testing.T) {
	state := ViewState{
		AuthFormVisible: true,
		Notices:         []domain.Notice{{Text: MsgMissingInput, Kind: domain.MessageError}},
	}

	push := renderString(t, RenderPush(state))
	assert.Contains(t, push, `<div id="auth-view" hx-swap-oob="true">`)
	assert.NotContains(t, push, MsgMissingInput, "pushes carry no notices")

	fragment := renderString(t, RenderFragment(state))
	assert.Contains(t, fragment, `<div id="notices" hx-swap-oob="true"`)
	assert.Contains(t, fragment, `class="notice notice-error" role="status">Enter email and password</div>`)

	page := renderString(t, RenderPage(state))
	assert.Contains(t, page, `ws-connect="/ws/auth"`)
	assert.Contains(t, page, `<div id="notices" aria-live="polite">`)
}

func TestRender_IsPure(t *testing.T) {
	state := ViewState{Mode: ModeSignUp, AuthFormVisible: true}
	assert.Equal(t, renderString(t, Render(state)), renderString(t, Render(state)))
}
