package websocket

import (
	"github.com/nfrund/examwhispers/internal/pubsub"
)

// Connected announces a new socket for a browser session. Subscribers use it
// to push the session's current view to the fresh tab.
type Connected struct {
	SessionID string `json:"session_id"`
	Clients   int    `json:"clients"`
}

// Disconnected announces a socket going away.
type Disconnected struct {
	SessionID string `json:"session_id"`
	Clients   int    `json:"clients"`
}

var (
	TopicConnected = pubsub.NewFrameworkEvent[Connected](
		"ws.session.connected",
		"A browser tab opened the auth view websocket",
	)

	TopicDisconnected = pubsub.NewFrameworkEvent[Disconnected](
		"ws.session.disconnected",
		"A browser tab closed the auth view websocket",
	)
)
