package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withSession runs fn inside the session middleware so flashes have a store.
func withSession(t *testing.T, fn func(c echo.Context)) {
	t.Helper()

	store := sessions.NewCookieStore([]byte("flash-test-secret-0123456789abcd"))
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), httptest.NewRecorder())
	err := session.Middleware(store)(func(c echo.Context) error {
		fn(c)
		return nil
	})(c)
	require.NoError(t, err)
}

func TestFlashes(t *testing.T) {
	tests := []struct {
		name        string
		set         func(c echo.Context)
		wantSuccess []string
		wantError   []string
	}{
		{
			name:        "success",
			set:         func(c echo.Context) { view.SetFlashSuccess(c, "✅ Logged out") },
			wantSuccess: []string{"✅ Logged out"},
		},
		{
			name:      "error",
			set:       func(c echo.Context) { view.SetFlashError(c, "❌ Invalid credentials") },
			wantError: []string{"❌ Invalid credentials"},
		},
		{
			name: "nothing set",
			set:  func(echo.Context) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSession(t, func(c echo.Context) {
				tt.set(c)

				got := view.GetFlashData(c)
				assert.ElementsMatch(t, tt.wantSuccess, got.Success)
				assert.ElementsMatch(t, tt.wantError, got.Error)

				again := view.GetFlashData(c)
				assert.Empty(t, again.Success, "flashes are consumed on read")
				assert.Empty(t, again.Error)
			})
		})
	}
}

func TestFlashData_Notices(t *testing.T) {
	withSession(t, func(c echo.Context) {
		view.SetFlashNotice(c, domain.Notice{Text: "❌ nope", Kind: domain.MessageError})
		view.SetFlashNotice(c, domain.Notice{Text: "✅ Logged out", Kind: domain.MessageSuccess})

		assert.Equal(t, []domain.Notice{
			{Text: "✅ Logged out", Kind: domain.MessageSuccess},
			{Text: "❌ nope", Kind: domain.MessageError},
		}, view.GetFlashData(c).Notices())
	})
}
