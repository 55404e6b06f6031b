package identity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
)

// AuthStateChanged is published whenever a browser session signs in or out.
// User is nil after a sign-out.
type AuthStateChanged struct {
	SessionID string       `json:"session_id"`
	User      *domain.User `json:"user"`
	At        time.Time    `json:"at"`
}

// TopicAuthStateChanged carries AuthStateChanged events.
var TopicAuthStateChanged = pubsub.NewFrameworkEvent[AuthStateChanged](
	"auth.state.changed",
	"Published when a browser session signs in, signs out or is restored",
)

// Sessions tracks the signed-in user of every browser session and fans
// auth-state transitions out to per-session observers through the bus.
type Sessions struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	observers map[string]map[int]domain.AuthStateFunc
	nextID    int

	// notifyMu serializes observer calls so the last call always sees the latest state.
	notifyMu sync.Mutex

	publisher pubsub.Publisher
	cancel    context.CancelFunc
	logger    *slog.Logger
}

// NewSessions creates a tracker and subscribes it to auth-state events.
func NewSessions(publisher pubsub.Publisher, subscriber pubsub.Subscriber) (*Sessions, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sessions{
		users:     make(map[string]*domain.User),
		observers: make(map[string]map[int]domain.AuthStateFunc),
		publisher: publisher,
		cancel:    cancel,
		logger:    slog.Default().With("service", "sessions"),
	}

	if err := pubsub.Subscribe(ctx, subscriber, TopicAuthStateChanged, s.dispatch); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// Current returns the signed-in user for a session, or nil.
func (s *Sessions) Current(sessionID string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.users[sessionID]; u != nil {
		copied := *u
		return &copied
	}
	return nil
}

// Set records the session's user (nil signs it out) and announces the transition.
func (s *Sessions) Set(ctx context.Context, sessionID string, user *domain.User) error {
	s.mu.Lock()
	if user == nil {
		delete(s.users, sessionID)
	} else {
		copied := *user
		s.users[sessionID] = &copied
	}
	s.mu.Unlock()

	s.logger.Debug("Auth state changed", "session_id", sessionID, "signed_in", user != nil)
	return pubsub.Publish(ctx, s.publisher, TopicAuthStateChanged, sessionID, AuthStateChanged{
		SessionID: sessionID,
		User:      user,
		At:        time.Now().UTC(),
	})
}

// Observe registers fn for a session. fn is called right away with the
// current user, which is how a reloaded page restores its signed-in view.
func (s *Sessions) Observe(sessionID string, fn domain.AuthStateFunc) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if s.observers[sessionID] == nil {
		s.observers[sessionID] = make(map[int]domain.AuthStateFunc)
	}
	s.observers[sessionID][id] = fn
	s.mu.Unlock()

	s.notifyMu.Lock()
	fn(s.Current(sessionID))
	s.notifyMu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers[sessionID], id)
		if len(s.observers[sessionID]) == 0 {
			delete(s.observers, sessionID)
		}
	}
}

func (s *Sessions) dispatch(ctx context.Context, sessionID string, event AuthStateChanged) error {
	s.mu.RLock()
	fns := make([]domain.AuthStateFunc, 0, len(s.observers[sessionID]))
	for _, fn := range s.observers[sessionID] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	if len(fns) == 0 {
		return nil
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	current := s.Current(sessionID)
	for _, fn := range fns {
		fn(current)
	}
	return nil
}

// Close stops event delivery to observers.
func (s *Sessions) Close() {
	s.cancel()
}
