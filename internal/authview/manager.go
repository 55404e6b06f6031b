package authview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/rendering"
	"github.com/nfrund/examwhispers/internal/view"
)

// Rendered carries a re-rendered auth view to the session's open tabs.
type Rendered struct {
	SessionID string `json:"session_id"`
	HTML      string `json:"html"`
}

// TopicRendered is published after every state change of a session's view.
var TopicRendered = pubsub.NewFrameworkEvent[Rendered](
	"authview.render",
	"Re-rendered auth view pushed to a browser session over the websocket",
)

// Idle sessions without an open socket are evicted after DefaultIdleTimeout.
const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultSweepEvery  = time.Minute
)

// Session bundles a controller with the navigator and notifier it drives.
type Session struct {
	ID         string
	Controller *Controller
	Pages      *view.Pages
	Notices    *view.Notices

	lastSeen time.Time // guarded by Manager.mu
}

// View returns the current state with pending notices drained into it.
func (s *Session) View() ViewState {
	state := s.Controller.State()
	state.Notices = s.Notices.Drain()
	return state
}

// Manager owns one Session per browser session, created on first use.
type Manager struct {
	provider  domain.IdentityProvider
	publisher pubsub.Publisher
	renderer  rendering.Renderer
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. A nil publisher disables pushes.
func NewManager(provider domain.IdentityProvider, publisher pubsub.Publisher, renderer rendering.Renderer) *Manager {
	if renderer == nil {
		renderer = rendering.NewUniversalRenderer()
	}
	return &Manager{
		provider:  provider,
		publisher: publisher,
		renderer:  renderer,
		logger:    slog.Default().With("service", "authview"),
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session's view, constructing it on first use.
func (m *Manager) Get(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.lastSeen = m.now()
		return s
	}

	s := &Session{
		ID:       sessionID,
		Pages:    view.NewPages(),
		Notices:  view.NewNotices(),
		lastSeen: m.now(),
	}
	s.Controller = NewController(sessionID, m.provider, s.Pages, s.Notices,
		WithLogger(m.logger),
		WithOnChange(func(state ViewState) { m.push(sessionID, state) }),
	)
	m.sessions[sessionID] = s
	m.logger.Debug("Auth view created", "session_id", sessionID)
	return s
}

// Len reports how many sessions have a view.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close unregisters every controller's auth-state observer.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.Controller.Close()
		delete(m.sessions, id)
	}
}

// Touch marks the session as used now, so an idle sweep keeps it.
func (m *Manager) Touch(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.lastSeen = m.now()
	}
}

// Remove drops a session's view and unregisters its auth-state observer.
// The signed-in user stays with the identity provider, so a later request
// rebuilds the view from it.
func (m *Manager) Remove(sessionID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		s.Controller.Close()
	}
	return ok
}

// Sweep removes sessions unused for longer than idle that have no open
// sockets according to connected. It returns how many were removed.
func (m *Manager) Sweep(idle time.Duration, connected func(sessionID string) int) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.lastSeen.After(cutoff) {
			continue
		}
		if connected != nil && connected(id) > 0 {
			continue
		}
		stale = append(stale, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Controller.Close()
	}
	if len(stale) > 0 {
		m.logger.Debug("Evicted idle auth views", "count", len(stale))
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx is canceled.
func (m *Manager) RunSweeper(ctx context.Context, interval, idle time.Duration, connected func(sessionID string) int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep(idle, connected)
		case <-ctx.Done():
			return
		}
	}
}

// Refresh pushes the current view of an existing session, typically to a tab
// that just connected. Pending notices stay queued for the next response.
func (m *Manager) Refresh(sessionID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return false
	}

	m.push(sessionID, s.Controller.State())
	return true
}

func (m *Manager) push(sessionID string, state ViewState) {
	if m.publisher == nil {
		return
	}

	ctx := context.Background()
	html, err := m.renderer.RenderComponent(ctx, RenderPush(state))
	if err != nil {
		m.logger.Error("Failed to render auth view", "session_id", sessionID, "error", err)
		return
	}

	if err := pubsub.Publish(ctx, m.publisher, TopicRendered, sessionID, Rendered{
		SessionID: sessionID,
		HTML:      string(html),
	}); err != nil {
		m.logger.Error("Failed to publish auth view", "session_id", sessionID, "error", err)
	}
}
