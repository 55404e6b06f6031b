package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"

	"github.com/nfrund/examwhispers/internal/topicmgr"
)

// Event[T] wraps a topic name and provides type-safe publishing and subscribing.
type Event[T any] struct {
	topic topicmgr.Topic
}

// NewEvent creates a typed module event and registers it with the default topic manager.
// The module is the first segment of the name ("study.history.logged" -> "study").
func NewEvent[T any](name, description string) Event[T] {
	module, _, _ := strings.Cut(name, ".")
	return newEvent[T](topicmgr.DefineModule(eventConfig[T](name, module, description)))
}

// NewFrameworkEvent creates a typed event owned by a core service.
func NewFrameworkEvent[T any](name, description string) Event[T] {
	return newEvent[T](topicmgr.DefineFramework(eventConfig[T](name, "", description)))
}

func newEvent[T any](topic topicmgr.Topic) Event[T] {
	// Events are declared at package level, so a failure here is a programming error.
	topicmgr.Default().MustRegister(topic)
	return Event[T]{topic: topic}
}

// eventConfig documents the payload by listing T's json field names.
func eventConfig[T any](name, module, description string) topicmgr.TopicConfig {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make([]string, 0)
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if tag != "" && tag != "-" {
				fields = append(fields, tag)
			}
		}
	}

	return topicmgr.TopicConfig{
		Name:        name,
		Module:      module,
		Description: description,
		Pattern:     name,
		Metadata: map[string]interface{}{
			"payload_fields": fields,
			"type_name":      t.Name(),
			"is_typed":       true,
		},
	}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topic.Name()
}

// Topic returns the catalogue entry for the event.
func (e Event[T]) Topic() topicmgr.Topic {
	return e.topic
}

// Publish sends a typed event addressed to one session. An empty sessionID broadcasts.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], sessionID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.Publish(ctx, Message{
		Topic:     event.Name(),
		SessionID: sessionID,
		Payload:   data,
	})
}

// Subscribe decodes every message on the event's topic before calling handler.
// Undecodable payloads are logged and skipped.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, sessionID string, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			slog.Error("Failed to decode event payload", "topic", msg.Topic, "error", err)
			return nil
		}
		return handler(ctx, msg.SessionID, payload)
	})
}
