package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/examwhispers/internal/domain"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashData holds the flash messages read back after a redirect.
type FlashData struct {
	Success []string
	Error   []string
}

// Notices converts the flashes into notices, successes first.
func (f FlashData) Notices() []domain.Notice {
	out := make([]domain.Notice, 0, len(f.Success)+len(f.Error))
	for _, msg := range f.Success {
		out = append(out, domain.Notice{Text: msg, Kind: domain.MessageSuccess})
	}
	for _, msg := range f.Error {
		out = append(out, domain.Notice{Text: msg, Kind: domain.MessageError})
	}
	return out
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlashNotice stores a notice under the flash key matching its kind.
func SetFlashNotice(c echo.Context, n domain.Notice) {
	if n.Kind == domain.MessageError {
		SetFlashError(c, n.Text)
		return
	}
	SetFlashSuccess(c, n.Text)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() clears what it returns; the session must be saved to persist that.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)

	data.Success = toStrings(successFlashes)
	data.Error = toStrings(errorFlashes)

	if len(successFlashes) > 0 || len(errorFlashes) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
