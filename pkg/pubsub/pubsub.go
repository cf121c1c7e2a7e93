package pubsub

import "sync"

// Well-known topics published by the engine.
const (
	TopicTopologyChanged = "topology.changed"
	TopicForceSaved      = "force.saved"
)

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// PubSub provides in-process publish/subscribe for engine events. The
// interactive editor subscribes to redraw after topology mutations; nothing
// in the engine blocks on delivery.
type PubSub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription]bool
	closed      bool
}

// Subscription represents a subscription to a single topic.
type Subscription struct {
	topic     string
	channel   chan Event
	ps        *PubSub
	closeOnce sync.Once
}

// New creates a new PubSub instance.
func New() *PubSub {
	return &PubSub{
		subscribers: make(map[string]map[*Subscription]bool),
	}
}

// Subscribe creates a new subscription to a topic. Returns nil after Close.
func (ps *PubSub) Subscribe(topic string) *Subscription {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return nil
	}

	sub := &Subscription{
		topic:   topic,
		channel: make(chan Event, 64),
		ps:      ps,
	}
	if ps.subscribers[topic] == nil {
		ps.subscribers[topic] = make(map[*Subscription]bool)
	}
	ps.subscribers[topic][sub] = true
	return sub
}

// Publish sends an event to all subscribers of its topic. Slow subscribers
// whose buffers are full miss the event rather than blocking the publisher.
func (ps *PubSub) Publish(topic string, payload any) {
	ps.mu.RLock()
	subs := make([]*Subscription, 0, len(ps.subscribers[topic]))
	for sub := range ps.subscribers[topic] {
		subs = append(subs, sub)
	}
	ps.mu.RUnlock()

	event := Event{Topic: topic, Payload: payload}
	for _, sub := range subs {
		select {
		case sub.channel <- event:
		default:
		}
	}
}

// Close shuts down the PubSub and closes all subscription channels.
func (ps *PubSub) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return
	}
	ps.closed = true
	for _, subs := range ps.subscribers {
		for sub := range subs {
			sub.closeOnce.Do(func() { close(sub.channel) })
		}
	}
	ps.subscribers = make(map[string]map[*Subscription]bool)
}

// Channel returns the receive channel for the subscription.
func (s *Subscription) Channel() <-chan Event {
	return s.channel
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string {
	return s.topic
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.ps.mu.Lock()
	if subs, ok := s.ps.subscribers[s.topic]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.ps.subscribers, s.topic)
		}
	}
	s.ps.mu.Unlock()

	s.closeOnce.Do(func() { close(s.channel) })
}
