// Package pubsub fans diagram and mood state out to web subscribers over
// Server-Sent Events, replaying buffered state to late joiners.
package pubsub

import (
	"context"
	"encoding/json"
)

// Topics the server publishes on.
const (
	TopicDiagram = "diagram" // node positions + resolved paths
	TopicMood    = "mood"    // rotation events
)

// Event is a published message with a per-topic version for ordering.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"`
}

// Subscription is a client's view of one topic.
type Subscription interface {
	Topic() string
	Events() <-chan Event

	// Close detaches the subscription; safe to call more than once.
	Close() error
}

// Publisher manages subscriptions and event delivery.
type Publisher interface {
	// Subscribe attaches to a topic. Cancelling ctx closes the
	// subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish marshals data and delivers it to all subscribers of topic.
	Publish(topic, eventType string, data interface{}) error

	Close() error
}

// MoodEvent announces a rotation to a new mood.
type MoodEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
