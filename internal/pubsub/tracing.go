package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracedPublisher opens a producer span around each published message.
type tracedPublisher struct {
	next   message.Publisher
	tracer trace.Tracer
}

func (p tracedPublisher) Publish(topic string, messages ...*message.Message) error {
	spans := make([]trace.Span, len(messages))
	for i, m := range messages {
		spans[i] = p.startSpan(topic, m)
	}

	err := p.next.Publish(topic, messages...)
	for _, span := range spans {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return err
}

func (p tracedPublisher) startSpan(topic string, m *message.Message) trace.Span {
	parent := m.Context()
	if parent == nil {
		parent = context.Background()
	}

	ctx, span := p.tracer.Start(parent, "pubsub.publish."+topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "watermill"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.message_id", m.UUID),
			attribute.String("browser.session_id", m.Metadata.Get(sessionKey)),
			attribute.Int("messaging.message_payload_size_bytes", len(m.Payload)),
		),
	)
	m.SetContext(ctx)
	return span
}

func (p tracedPublisher) Close() error { return p.next.Close() }
