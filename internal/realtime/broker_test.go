package realtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonsplats/internal/domain"
	"annonsplats/internal/realtime"
)

func receive(t *testing.T, sub realtime.Subscription) []byte {
	t.Helper()
	select {
	case payload, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func testBroker(t *testing.T, broker realtime.Broker) {
	ctx := context.Background()
	appID := uuid.New()
	topic := realtime.MessagesTopic(appID)

	sub, err := broker.Subscribe(ctx, topic)
	require.NoError(t, err)
	defer sub.Close()

	other, err := broker.Subscribe(ctx, realtime.MessagesTopic(uuid.New()))
	require.NoError(t, err)
	defer other.Close()

	msg := &domain.Message{ID: uuid.New(), ApplicationID: appID, Content: "Hej!"}
	require.NoError(t, realtime.PublishEvent(ctx, broker, topic, realtime.Event{
		Type:    realtime.EventMessageInserted,
		Message: msg,
	}))

	evt, err := realtime.DecodeEvent(receive(t, sub))
	require.NoError(t, err)
	assert.Equal(t, realtime.EventMessageInserted, evt.Type)
	require.NotNil(t, evt.Message)
	assert.Equal(t, msg.ID, evt.Message.ID)
	assert.Equal(t, "Hej!", evt.Message.Content)

	select {
	case <-other.C():
		t.Fatal("event leaked to another topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBroker(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	defer broker.Close()

	testBroker(t, broker)
}

func TestMemoryBroker_CloseSubscription(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	sub, err := broker.Subscribe(context.Background(), "badge:x")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	_, ok := <-sub.C()
	assert.False(t, ok)

	// Publishing to a topic without subscribers is fine.
	assert.NoError(t, broker.Publish(context.Background(), "badge:x", []byte("{}")))
}

func TestRedisBroker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testBroker(t, realtime.NewRedisBroker(client))
}
