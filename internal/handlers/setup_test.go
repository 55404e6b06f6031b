package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/examwhispers/internal/authview"
	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/handlers"
	"github.com/nfrund/examwhispers/internal/identity"
	"github.com/nfrund/examwhispers/internal/middleware"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/rendering"
	"github.com/nfrund/examwhispers/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

type authTest struct {
	e        *echo.Echo
	provider *identity.LocalProvider
	views    *authview.Manager
}

func setupAuthTest(t *testing.T) *authTest {
	t.Helper()

	bus := pubsub.NewBus()
	sessionsTracker, err := identity.NewSessions(bus, bus)
	require.NoError(t, err)
	provider := identity.NewLocalProvider(storage.NewAferoStore(afero.NewMemMapFs()), sessionsTracker, identity.WithBcryptCost(bcrypt.MinCost))
	views := authview.NewManager(provider, nil, nil)

	t.Cleanup(func() {
		views.Close()
		sessionsTracker.Close()
		_ = bus.Close()
	})

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.Use(middleware.Logger)
	e.Use(middleware.BrowserSession)

	h := handlers.NewAuthHandler(views)
	e.GET("/", h.Page)
	e.POST("/auth/submit", h.Submit)
	e.POST("/auth/toggle", h.Toggle)
	e.POST("/auth/logout", h.Logout)
	e.GET("/pages/:name", h.Navigate)

	_, err = provider.Register(context.Background(), domain.Credentials{Email: "student@example.com", Password: "secret1"})
	require.NoError(t, err)

	return &authTest{e: e, provider: provider, views: views}
}

// browser replays cookies between requests like a real client.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func credentials(email, password string) url.Values {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	return form
}
