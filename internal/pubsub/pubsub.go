// Package pubsub carries events between the auth views, the websocket bridge
// and the study services over an in-process watermill channel.
package pubsub

import "context"

// Message is one event on the bus.
type Message struct {
	Topic string
	// SessionID addresses a single browser session. Empty means broadcast.
	SessionID string
	Payload   []byte
	Metadata  map[string]string
}

// Handler processes one delivered message.
type Handler func(ctx context.Context, msg Message) error

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber delivers messages until ctx is canceled. Subscribe returns as
// soon as the subscription is live.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
