package notify

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Notifier receives events after the data change they describe has been committed.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Publisher sends an encoded event to a message broker.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// AMQPNotifier publishes events as JSON through a broker; the Dispatcher consumes them.
type AMQPNotifier struct {
	publisher Publisher
}

// NewAMQPNotifier creates a notifier that publishes through p.
func NewAMQPNotifier(p Publisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: p}
}

func (n *AMQPNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Kind, err)
	}
	if err := n.publisher.Publish(ctx, body); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Kind, err)
	}
	return nil
}
