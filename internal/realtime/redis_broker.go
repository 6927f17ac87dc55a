package realtime

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.client.Publish(ctx, topic, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, topic)
	// Wait for the subscription confirmation so publishes issued right
	// after Subscribe returns are not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		out:    make(chan []byte, subscriberBuffer),
		done:   make(chan struct{}),
	}
	go sub.pump()
	return sub, nil
}

// Close is a no-op; the redis client is owned by the caller.
func (b *RedisBroker) Close() error {
	return nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	out    chan []byte
	done   chan struct{}
	once   sync.Once
}

func (s *redisSubscription) pump() {
	defer close(s.out)
	ch := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case s.out <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func (s *redisSubscription) C() <-chan []byte {
	return s.out
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
