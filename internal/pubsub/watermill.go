package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
)

// Reserved watermill metadata keys; everything else is passed through.
const (
	sessionKey = "session_id"
	topicKey   = "topic"
)

const outputBuffer = 64

// Bus is the in-memory Publisher and Subscriber backed by a watermill GoChannel.
type Bus struct {
	pub message.Publisher
	sub message.Subscriber
}

// Option configures a Bus.
type Option func(*busOptions)

type busOptions struct {
	tracer trace.Tracer
	logger watermill.LoggerAdapter
}

// WithTracer wraps every publish in a producer span. A nil tracer is ignored.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *busOptions) { o.tracer = tracer }
}

// NewBus creates a bus with no subscribers.
func NewBus(opts ...Option) *Bus {
	o := busOptions{logger: watermill.NewStdLogger(false, false)}
	for _, opt := range opts {
		opt(&o)
	}

	channel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: outputBuffer}, o.logger)

	b := &Bus{pub: channel, sub: channel}
	if o.tracer != nil {
		b.pub = tracedPublisher{next: channel, tracer: o.tracer}
	}
	return b
}

func encode(ctx context.Context, msg Message) *message.Message {
	out := message.NewMessage(watermill.NewUUID(), msg.Payload)
	out.SetContext(ctx)
	for k, v := range msg.Metadata {
		out.Metadata.Set(k, v)
	}
	out.Metadata.Set(sessionKey, msg.SessionID)
	out.Metadata.Set(topicKey, msg.Topic)
	return out
}

func decode(in *message.Message) Message {
	msg := Message{
		Topic:     in.Metadata.Get(topicKey),
		SessionID: in.Metadata.Get(sessionKey),
		Payload:   in.Payload,
		Metadata:  make(map[string]string, len(in.Metadata)),
	}
	for k, v := range in.Metadata {
		if k == sessionKey || k == topicKey {
			continue
		}
		msg.Metadata[k] = v
	}
	return msg
}

func (b *Bus) Publish(ctx context.Context, msg Message) error {
	return b.pub.Publish(msg.Topic, encode(ctx, msg))
}

// Subscribe consumes topic on its own goroutine. A failing handler is logged
// and the message is still acked, since GoChannel would redeliver it forever.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	in, err := b.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for m := range in {
			if err := handler(m.Context(), decode(m)); err != nil {
				slog.Error("Event handler failed", "topic", topic, "msg_id", m.UUID, "error", err)
			}
			m.Ack()
		}
		slog.Debug("Subscription closed", "topic", topic)
	}()
	return nil
}

// Close ends every subscription.
func (b *Bus) Close() error {
	return b.sub.Close()
}
