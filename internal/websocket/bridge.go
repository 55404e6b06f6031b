package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/examwhispers/internal/authview"
	"github.com/nfrund/examwhispers/internal/middleware"
	"github.com/nfrund/examwhispers/internal/pubsub"
)

// DirectMessage is a payload addressed to every tab of one browser session.
type DirectMessage struct {
	SessionID string
	Payload   []byte
}

// Bridge keeps the open sockets of each browser session and forwards
// re-rendered auth views to them.
type Bridge struct {
	publisher      pubsub.Publisher
	logger         *slog.Logger
	originPatterns []string

	// clients maps a session ID to its open tabs.
	clients map[string][]*Client
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	direct     chan *DirectMessage
	done       chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithOriginPatterns allows cross-origin upgrades from the given host patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(b *Bridge) { b.originPatterns = patterns }
}

// NewBridge creates a bridge. A nil publisher disables connect announcements.
func NewBridge(pub pubsub.Publisher, opts ...Option) *Bridge {
	b := &Bridge{
		publisher:  pub,
		logger:     slog.Default().With("service", "websocket"),
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *DirectMessage, 64),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start subscribes to rendered auth views and runs the bridge until ctx is canceled.
func (b *Bridge) Start(ctx context.Context, sub pubsub.Subscriber) error {
	err := pubsub.Subscribe(ctx, sub, authview.TopicRendered,
		func(_ context.Context, sessionID string, r authview.Rendered) error {
			if sessionID == "" {
				sessionID = r.SessionID
			}
			b.SendDirect(sessionID, []byte(r.HTML))
			return nil
		})
	if err != nil {
		return err
	}

	go b.Run(ctx)
	return nil
}

// Run routes registrations and direct messages until ctx is canceled, then
// closes every client.
func (b *Bridge) Run(ctx context.Context) {
	b.logger.Info("WebSocket bridge started")
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for id, clients := range b.clients {
				for _, client := range clients {
					close(client.send)
				}
				delete(b.clients, id)
			}
			b.mu.Unlock()
			b.logger.Info("WebSocket bridge stopped")
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client.SessionID] = append(b.clients[client.SessionID], client)
			count := len(b.clients[client.SessionID])
			b.mu.Unlock()

			b.logger.Debug("Client registered", "session_id", client.SessionID, "clients", count)
			go b.announce(TopicConnected.Name(), func(ctx context.Context) error {
				return pubsub.Publish(ctx, b.publisher, TopicConnected, client.SessionID,
					Connected{SessionID: client.SessionID, Clients: count})
			})

		case client := <-b.unregister:
			b.mu.Lock()
			clients, ok := b.clients[client.SessionID]
			found := false
			for i, c := range clients {
				if c == client {
					b.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
					found = true
					break
				}
			}
			count := len(b.clients[client.SessionID])
			if ok && count == 0 {
				delete(b.clients, client.SessionID)
			}
			if found {
				close(client.send)
			}
			b.mu.Unlock()

			if !found {
				continue
			}
			b.logger.Debug("Client unregistered", "session_id", client.SessionID, "clients", count)
			go b.announce(TopicDisconnected.Name(), func(ctx context.Context) error {
				return pubsub.Publish(ctx, b.publisher, TopicDisconnected, client.SessionID,
					Disconnected{SessionID: client.SessionID, Clients: count})
			})

		case message := <-b.direct:
			b.mu.RLock()
			for _, client := range b.clients[message.SessionID] {
				select {
				case client.send <- message.Payload:
				default:
					b.logger.Warn("Client send channel full, dropping message", "session_id", message.SessionID)
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Handler upgrades GET requests to a websocket bound to the caller's browser session.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no browser session")
		}

		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			OriginPatterns: b.originPatterns,
		})
		if err != nil {
			middleware.FromContext(c.Request().Context()).Warn("Failed to upgrade connection to WebSocket", "error", err)
			return nil
		}

		client := &Client{
			SessionID: sessionID,
			conn:      conn,
			send:      make(chan []byte, sendBuffer),
			bridge:    b,
		}
		select {
		case b.register <- client:
		case <-b.done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return nil
		}

		go client.writePump()
		client.readPump(c.Request().Context())
		return nil
	}
}

// SendDirect queues payload for every open tab of the session.
func (b *Bridge) SendDirect(sessionID string, payload []byte) {
	select {
	case b.direct <- &DirectMessage{SessionID: sessionID, Payload: payload}:
	case <-b.done:
	}
}

// Clients reports how many tabs of the session are connected.
func (b *Bridge) Clients(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[sessionID])
}

func (b *Bridge) remove(c *Client) {
	select {
	case b.unregister <- c:
	case <-b.done:
	}
}

func (b *Bridge) announce(topic string, publish func(ctx context.Context) error) {
	if b.publisher == nil {
		return
	}
	if err := publish(context.Background()); err != nil {
		b.logger.Error("Failed to publish websocket event", "topic", topic, "error", err)
	}
}
