package pubsub

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingPublisher struct {
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.topics = append(p.topics, topic)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestTracedPublisher(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	t.Run("records one span per message", func(t *testing.T) {
		inner := &recordingPublisher{}
		pub := tracedPublisher{next: inner, tracer: tracer}

		msg := encode(context.Background(), Message{Topic: "auth.state.changed", SessionID: "s1"})
		require.NoError(t, pub.Publish("auth.state.changed", msg))

		assert.Equal(t, []string{"auth.state.changed"}, inner.topics)
		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "pubsub.publish.auth.state.changed", spans[0].Name())
	})

	t.Run("marks spans failed when publish fails", func(t *testing.T) {
		inner := &recordingPublisher{err: assert.AnError}
		pub := tracedPublisher{next: inner, tracer: tracer}

		msg := encode(context.Background(), Message{Topic: "auth.fail"})
		assert.ErrorIs(t, pub.Publish("auth.fail", msg), assert.AnError)

		spans := recorder.Ended()
		last := spans[len(spans)-1]
		assert.Equal(t, "Error", last.Status().Code.String())
	})
}

func TestSetupOTel(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled tracing returns a no-op tracer", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{Enabled: false})
		require.NoError(t, err)
		defer cleanup()

		_, span := tracer.Start(ctx, "test")
		assert.False(t, span.SpanContext().IsValid())
		span.End()
	})

	t.Run("enabled tracing builds a provider", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{
			Enabled:     true,
			ServiceName: "test-service",
			ZipkinURL:   "http://127.0.0.1:9/api/v2/spans",
		})
		require.NoError(t, err)
		require.NotNil(t, tracer)

		bus := NewBus(WithTracer(tracer))
		assert.NoError(t, bus.Publish(ctx, Message{Topic: "auth.traced"}))
		assert.NoError(t, bus.Close())
		cleanup()
	})
}
