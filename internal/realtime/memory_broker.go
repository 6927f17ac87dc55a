package realtime

import (
	"context"
	"sync"
)

const subscriberBuffer = 64

// MemoryBroker delivers within a single process.
type MemoryBroker struct {
	mu     sync.RWMutex
	topics map[string]map[*memorySubscription]struct{}
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{topics: make(map[string]map[*memorySubscription]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, topic string) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &memorySubscription{broker: b, topic: topic, ch: make(chan []byte, subscriberBuffer)}
	if b.closed {
		close(sub.ch)
		return sub, nil
	}

	set, ok := b.topics[topic]
	if !ok {
		set = make(map[*memorySubscription]struct{})
		b.topics[topic] = set
	}
	set[sub] = struct{}{}
	return sub, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, set := range b.topics {
		for sub := range set {
			close(sub.ch)
		}
		delete(b.topics, topic)
	}
	b.closed = true
	return nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	if _, exists := set[sub]; exists {
		delete(set, sub)
		close(sub.ch)
	}
	if len(set) == 0 {
		delete(b.topics, sub.topic)
	}
}

type memorySubscription struct {
	broker *MemoryBroker
	topic  string
	ch     chan []byte
}

func (s *memorySubscription) C() <-chan []byte {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.broker.remove(s)
	return nil
}
