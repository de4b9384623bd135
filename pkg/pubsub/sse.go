package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mkarlsen/moodgraph/pkg/logging"
)

// subscriberBuffer is the per-subscription channel depth. Publishing never
// blocks; a subscriber that falls this far behind loses events.
const subscriberBuffer = 100

// TopicConfig controls event buffering for late subscribers.
type TopicConfig struct {
	BufferSize int  // events retained per topic; 0 disables buffering
	ReplayAll  bool // replay the whole buffer instead of just the last event
}

// SSEPublisher implements Publisher with per-topic ring buffers.
type SSEPublisher struct {
	mu       sync.RWMutex
	subs     map[string]map[*subscription]struct{}
	versions map[string]int
	buffers  map[string][]Event
	configs  map[string]TopicConfig
	closed   bool
}

// NewSSEPublisher creates an empty publisher.
func NewSSEPublisher() *SSEPublisher {
	return &SSEPublisher{
		subs:     make(map[string]map[*subscription]struct{}),
		versions: make(map[string]int),
		buffers:  make(map[string][]Event),
		configs:  make(map[string]TopicConfig),
	}
}

// ConfigureTopic sets the buffering policy for a topic.
func (p *SSEPublisher) ConfigureTopic(topic string, cfg TopicConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configs[topic] = cfg
}

// Subscribe attaches to a topic and replays buffered events according to
// the topic's policy.
func (p *SSEPublisher) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("publisher is closed")
	}

	sub := &subscription{
		topic:     topic,
		events:    make(chan Event, subscriberBuffer),
		publisher: p,
	}
	if p.subs[topic] == nil {
		p.subs[topic] = make(map[*subscription]struct{})
	}
	p.subs[topic][sub] = struct{}{}

	replay := append([]Event(nil), p.buffers[topic]...)
	if !p.configs[topic].ReplayAll && len(replay) > 1 {
		replay = replay[len(replay)-1:]
	}
	p.mu.Unlock()

	for _, ev := range replay {
		select {
		case sub.events <- ev:
		default:
			logging.Warn("could not replay event to new subscriber", "topic", topic)
		}
	}
	if len(replay) > 0 {
		logging.Debug("replayed events to new subscriber", "topic", topic, "count", len(replay))
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

// Publish delivers an event to every subscriber of the topic without
// blocking; slow subscribers drop events.
func (p *SSEPublisher) Publish(topic, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	p.versions[topic]++
	ev := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    payload,
		Version: p.versions[topic],
	}

	if size := p.configs[topic].BufferSize; size > 0 {
		buf := append(p.buffers[topic], ev)
		if len(buf) > size {
			buf = buf[len(buf)-size:]
		}
		p.buffers[topic] = buf
	}

	for sub := range p.subs[topic] {
		select {
		case sub.events <- ev:
		default:
			logging.Warn("subscriber channel full, dropping event", "topic", topic)
		}
	}
	return nil
}

// Close shuts down the publisher and every subscription.
func (p *SSEPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for _, subs := range p.subs {
		for sub := range subs {
			close(sub.events)
		}
	}
	p.subs = make(map[string]map[*subscription]struct{})
	return nil
}

func (p *SSEPublisher) unsubscribe(sub *subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if subs := p.subs[sub.topic]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(p.subs, sub.topic)
		}
	}
}

type subscription struct {
	topic     string
	events    chan Event
	publisher *SSEPublisher
	closeOnce sync.Once
}

func (s *subscription) Topic() string        { return s.topic }
func (s *subscription) Events() <-chan Event { return s.events }

func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.publisher.unsubscribe(s)
	})
	return nil
}

// WriteSSE writes one event in SSE wire format: "data: {json}\n\n".
func WriteSSE(w io.Writer, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
