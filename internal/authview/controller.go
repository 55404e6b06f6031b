package authview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/view"
)

// User-facing notification texts.
const (
	MsgMissingInput   = "Enter email and password"
	MsgLoggedIn       = "✅ Logged in!"
	MsgAccountCreated = "✅ Account created!"
	MsgLoggedOut      = "✅ Logged out"
	msgErrorPrefix    = "❌ "
)

// Navigator switches the visible page section.
type Navigator interface {
	ActivatePage(name string) error
	DeactivateAll()
	Active() string
}

// Notifier displays a transient notification.
type Notifier interface {
	ShowMessage(text string, kind domain.MessageKind)
}

// Outcome is the single result delivered for a submit or logout.
type Outcome struct {
	User   *domain.User
	Notice domain.Notice
	Err    error
}

// Controller is the authentication view of one browser session.
type Controller struct {
	sessionID string
	provider  domain.IdentityProvider
	nav       Navigator
	notifier  Notifier
	logger    *slog.Logger
	onChange  func(ViewState)

	mu          sync.Mutex
	mode        FormMode
	user        *domain.User
	formVisible bool
	inFlight    bool

	unsubscribe func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithOnChange registers fn to receive a snapshot after every state change.
// Snapshots carry no notices.
func WithOnChange(fn func(ViewState)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController builds the controller for a session and registers its
// auth-state observer, which fires right away with the current user.
func NewController(sessionID string, provider domain.IdentityProvider, nav Navigator, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		sessionID:   sessionID,
		provider:    provider,
		nav:         nav,
		notifier:    notifier,
		logger:      slog.Default(),
		mode:        ModeLogin,
		formVisible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session_id", sessionID)

	c.unsubscribe = provider.OnAuthStateChanged(sessionID, c.OnAuthStateChanged)
	return c
}

// Submit signs in or creates an account depending on the form mode. Input is
// validated synchronously; the provider call runs in the background and its
// Outcome is delivered exactly once on the returned channel.
func (c *Controller) Submit(ctx context.Context, email, password string) (<-chan Outcome, error) {
	creds := domain.Credentials{Email: email, Password: password}.Trimmed()
	if creds.Email == "" || creds.Password == "" {
		c.notifier.ShowMessage(MsgMissingInput, domain.MessageError)
		return nil, domain.ErrMissingInput
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	c.inFlight = true
	mode := c.mode
	c.mu.Unlock()

	// The call runs to completion even if the request that started it goes away.
	ctx = context.WithoutCancel(ctx)

	done := make(chan Outcome, 1)
	go func() {
		defer close(done)

		var user *domain.User
		var err error
		if mode == ModeSignUp {
			user, err = c.provider.CreateAccount(ctx, c.sessionID, creds)
		} else {
			user, err = c.provider.SignIn(ctx, c.sessionID, creds)
		}
		done <- c.finishSubmit(mode, user, err)
	}()
	return done, nil
}

func (c *Controller) finishSubmit(mode FormMode, user *domain.User, err error) Outcome {
	c.mu.Lock()
	c.inFlight = false

	if err != nil {
		notice := domain.Notice{Text: msgErrorPrefix + domain.ProviderMessage(err), Kind: domain.MessageError}
		c.notifier.ShowMessage(notice.Text, notice.Kind)
		state := c.stateLocked()
		c.mu.Unlock()

		c.logger.Info("Auth submission rejected", "mode", mode.String(), "error", err)
		c.emit(state)
		return Outcome{Notice: notice, Err: err}
	}

	notice := domain.Notice{Text: MsgLoggedIn, Kind: domain.MessageSuccess}
	if mode == ModeSignUp {
		notice.Text = MsgAccountCreated
	}
	c.notifier.ShowMessage(notice.Text, notice.Kind)
	// The auth-state notification may arrive after the outcome; the response
	// rendered from this state must already be signed in.
	if user != nil {
		copied := *user
		c.user = &copied
	}
	c.activateHomeLocked()
	c.formVisible = false
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
	return Outcome{User: user, Notice: notice}
}

// ToggleMode flips between login and sign-up and returns the new mode.
func (c *Controller) ToggleMode() FormMode {
	c.mu.Lock()
	c.mode = c.mode.Toggled()
	mode := c.mode
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
	return mode
}

// Logout signs the session out. Visibility is left to the auth-state observer.
func (c *Controller) Logout(ctx context.Context) <-chan Outcome {
	ctx = context.WithoutCancel(ctx)

	done := make(chan Outcome, 1)
	go func() {
		defer close(done)

		err := c.provider.SignOut(ctx, c.sessionID)

		notice := domain.Notice{Text: MsgLoggedOut, Kind: domain.MessageSuccess}
		if err != nil {
			c.logger.Error("Logout failed", "error", err)
			notice = domain.Notice{Text: msgErrorPrefix + domain.ProviderMessage(err), Kind: domain.MessageError}
		}

		c.mu.Lock()
		c.notifier.ShowMessage(notice.Text, notice.Kind)
		c.mu.Unlock()

		done <- Outcome{Notice: notice, Err: err}
	}()
	return done
}

// OnAuthStateChanged applies a provider notification. A present user hides the
// form and shows home; an absent user shows the form and deactivates every page.
func (c *Controller) OnAuthStateChanged(user *domain.User) {
	c.mu.Lock()
	if user != nil {
		copied := *user
		c.user = &copied
		c.formVisible = false
		c.activateHomeLocked()
	} else {
		c.user = nil
		c.formVisible = true
		c.nav.DeactivateAll()
	}
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
}

// Navigate activates a page section. Pages stay hidden while signed out.
func (c *Controller) Navigate(page string) error {
	if !view.IsPage(page) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPage, page)
	}

	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return domain.ErrNotSignedIn
	}
	if err := c.nav.ActivatePage(page); err != nil {
		c.mu.Unlock()
		return err
	}
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
	return nil
}

// State returns a snapshot of the view state without notices.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close removes the auth-state observer.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Controller) activateHomeLocked() {
	if err := c.nav.ActivatePage(view.PageHome); err != nil {
		c.logger.Error("Failed to activate home page", "error", err)
	}
}

func (c *Controller) stateLocked() ViewState {
	var user *domain.User
	if c.user != nil {
		copied := *c.user
		user = &copied
	}
	return ViewState{
		Mode:            c.mode,
		User:            user,
		AuthFormVisible: c.formVisible,
		ActivePage:      c.nav.Active(),
		Submitting:      c.inFlight,
	}
}

func (c *Controller) emit(state ViewState) {
	if c.onChange != nil {
		c.onChange(state)
	}
}
