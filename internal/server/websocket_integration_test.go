package server_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readUntil reads pushed views until one contains want.
func readUntil(t *testing.T, conn *websocket.Conn, want string) string {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "no pushed view contained %q", want)
		if strings.Contains(string(data), want) {
			return string(data)
		}
	}
}

func TestAuthViewPush_Integration(t *testing.T) {
	_, testServer := setupIntegrationTest(t)
	client := newBrowserClient(t)

	// The first page load assigns the browser session.
	res, err := client.Get(testServer.URL + "/")
	require.NoError(t, err)
	readBody(t, res)

	dialer := websocket.Dialer{Jar: client.Jar, HandshakeTimeout: 2 * time.Second}
	wsURL := "ws" + strings.TrimPrefix(testServer.URL, "http") + "/ws/auth"
	conn, _, err := dialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}()

	t.Run("a new tab receives the current view", func(t *testing.T) {
		html := readUntil(t, conn, `id="auth-view"`)
		assert.Contains(t, html, `hx-swap-oob="true"`)
		assert.Contains(t, html, `id="login-section"`)
	})

	t.Run("signing in pushes the signed-in view", func(t *testing.T) {
		form := url.Values{"email": {testEmail}, "password": {testPassword}}
		req, err := http.NewRequest(http.MethodPost, testServer.URL+"/auth/submit", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")

		res, err := client.Do(req)
		require.NoError(t, err)
		readBody(t, res)
		require.Equal(t, http.StatusOK, res.StatusCode)

		html := readUntil(t, conn, `<section id="page-home" class="active page">`)
		assert.NotContains(t, html, "✅", "notices are never pushed")
	})

	t.Run("a logged question pushes the refreshed history", func(t *testing.T) {
		form := url.Values{"question": {"What is air made of?"}}
		req, err := http.NewRequest(http.MethodPost, testServer.URL+"/ask_ai", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")

		res, err := client.Do(req)
		require.NoError(t, err)
		readBody(t, res)
		require.Equal(t, http.StatusOK, res.StatusCode)

		html := readUntil(t, conn, `<div id="history-list" hx-swap-oob="innerHTML">`)
		assert.Contains(t, html, "What is air made of?")
		assert.NotContains(t, html, `id="auth-view"`)
	})

	t.Run("signing out pushes the login form back", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, testServer.URL+"/auth/logout", nil)
		require.NoError(t, err)
		req.Header.Set("HX-Request", "true")

		res, err := client.Do(req)
		require.NoError(t, err)
		readBody(t, res)

		readUntil(t, conn, `<section id="page-home" class="page">`)
	})
}
