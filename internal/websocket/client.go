package websocket

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
)

// Client is one open tab of a browser session.
type Client struct {
	SessionID string
	conn      *websocket.Conn
	send      chan []byte
	bridge    *Bridge
}

// readPump drains the connection until the tab goes away. The auth view only
// pushes, so anything a client sends is discarded.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.bridge.remove(c)
		c.conn.Close(websocket.StatusNormalClosure, "client disconnected")
	}()

	for {
		_, _, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			switch {
			case status == websocket.StatusNormalClosure, status == websocket.StatusGoingAway:
				c.bridge.logger.Debug("WebSocket closed by client", "session_id", c.SessionID)
			case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			default:
				c.bridge.logger.Warn("WebSocket read error", "session_id", c.SessionID, "error", err)
			}
			return
		}
	}
}

// writePump forwards queued payloads until the bridge closes the send channel.
func (c *Client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "server-side cleanup")

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			c.bridge.logger.Warn("WebSocket write error", "session_id", c.SessionID, "error", err)
			return
		}
	}
}
