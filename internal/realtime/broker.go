package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"annonsplats/internal/domain"
)

// Broker fans published payloads out to every live subscriber of a topic.
// Delivery is at-most-once; subscribers that fall behind lose events.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (Subscription, error)
	Close() error
}

type Subscription interface {
	C() <-chan []byte
	Close() error
}

const (
	EventMessageInserted = "message.inserted"
	EventBadge           = "badge"
)

type Event struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Badge   *domain.Badge   `json:"badge,omitempty"`
}

func MessagesTopic(applicationID uuid.UUID) string {
	return fmt.Sprintf("messages:%s", applicationID)
}

func PublishEvent(ctx context.Context, b Broker, topic string, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.Publish(ctx, topic, payload)
}

func DecodeEvent(payload []byte) (Event, error) {
	var evt Event
	err := json.Unmarshal(payload, &evt)
	return evt, err
}

func PublishMessage(ctx context.Context, b Broker, msg *domain.Message) error {
	return PublishEvent(ctx, b, MessagesTopic(msg.ApplicationID), Event{
		Type:    EventMessageInserted,
		Message: msg,
	})
}
