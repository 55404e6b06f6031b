package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/examwhispers/internal/authview"
	"github.com/nfrund/examwhispers/internal/config"
	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/identity"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/rendering"
	"github.com/nfrund/examwhispers/internal/storage"
	"github.com/nfrund/examwhispers/internal/study"
	"github.com/nfrund/examwhispers/internal/websocket"
	"github.com/nfrund/examwhispers/web/src/templates/pages"
)

// Dependencies holds the core services shared by the HTTP server and its
// background subscribers. Build creates them from configuration.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Store      storage.Store
	Sessions   *identity.Sessions
	Provider   domain.IdentityProvider
	Views      *authview.Manager
	Bridge     *websocket.Bridge
	Tracker    *study.Tracker
	Tutor      study.Tutor

	closers []func()
}

// Bus is both halves of the message bus.
type Bus interface {
	pubsub.Publisher
	pubsub.Subscriber
}

// Build wires the services on top of an existing bus and data store.
func Build(cfg config.Provider, bus Bus, store storage.Store) (*Dependencies, error) {
	sessions, err := identity.NewSessions(bus, bus)
	if err != nil {
		return nil, fmt.Errorf("starting session tracker: %w", err)
	}

	provider, err := NewIdentityProvider(cfg, store, sessions)
	if err != nil {
		sessions.Close()
		return nil, err
	}

	renderer := rendering.NewUniversalRenderer()
	views := authview.NewManager(provider, bus, renderer)

	deps := &Dependencies{
		Publisher:  bus,
		Subscriber: bus,
		Renderer:   renderer,
		Store:      store,
		Sessions:   sessions,
		Provider:   provider,
		Views:      views,
		Bridge:     websocket.NewBridge(bus, websocket.WithOriginPatterns(originPatterns(cfg.GetAppBaseURL())...)),
		Tracker:    study.NewTracker(store, bus),
		Tutor:      study.CannedTutor{},
	}
	deps.closers = append(deps.closers, views.Close, sessions.Close)
	return deps, nil
}

// NewIdentityProvider returns the provider selected by IDENTITY_BACKEND.
func NewIdentityProvider(cfg config.Provider, store storage.Store, sessions *identity.Sessions) (domain.IdentityProvider, error) {
	switch cfg.GetIdentityBackend() {
	case config.BackendLocal, "":
		return identity.NewLocalProvider(store, sessions), nil
	case config.BackendFirebase:
		return identity.NewFirebaseProvider(cfg.GetFirebaseAPIKey(), cfg.GetFirebaseAuthURL(), sessions), nil
	default:
		return nil, fmt.Errorf("unknown identity backend %q", cfg.GetIdentityBackend())
	}
}

// Start runs the background subscribers until ctx is canceled.
func (d *Dependencies) Start(ctx context.Context) error {
	if err := d.Bridge.Start(ctx, d.Subscriber); err != nil {
		return fmt.Errorf("starting websocket bridge: %w", err)
	}

	// A fresh tab gets the session's current view without waiting for a change.
	err := pubsub.Subscribe(ctx, d.Subscriber, websocket.TopicConnected,
		func(_ context.Context, sessionID string, _ websocket.Connected) error {
			d.Views.Refresh(sessionID)
			return nil
		})
	if err != nil {
		return fmt.Errorf("subscribing to websocket connections: %w", err)
	}

	// The idle clock of a session restarts whenever one of its tabs closes.
	err = pubsub.Subscribe(ctx, d.Subscriber, websocket.TopicDisconnected,
		func(_ context.Context, sessionID string, _ websocket.Disconnected) error {
			d.Views.Touch(sessionID)
			return nil
		})
	if err != nil {
		return fmt.Errorf("subscribing to websocket disconnections: %w", err)
	}

	err = pubsub.Subscribe(ctx, d.Subscriber, study.TopicHistoryLogged,
		func(ctx context.Context, sessionID string, _ domain.HistoryEntry) error {
			return d.pushHistory(ctx, sessionID)
		})
	if err != nil {
		return fmt.Errorf("subscribing to study history: %w", err)
	}

	go d.Views.RunSweeper(ctx, authview.DefaultSweepEvery, authview.DefaultIdleTimeout, d.Bridge.Clients)
	return nil
}

// pushHistory sends the session's open tabs a refreshed history list.
func (d *Dependencies) pushHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" || d.Bridge.Clients(sessionID) == 0 {
		return nil
	}

	html, err := d.Renderer.RenderComponent(ctx, pages.HistoryPush(d.Tracker.All(ctx)))
	if err != nil {
		return fmt.Errorf("rendering history: %w", err)
	}
	d.Bridge.SendDirect(sessionID, html)
	slog.Debug("Pushed study history", "session_id", sessionID)
	return nil
}

// Close releases the controllers and the session tracker. The bus is owned by the caller.
func (d *Dependencies) Close() {
	for _, closeFn := range d.closers {
		closeFn()
	}
}
