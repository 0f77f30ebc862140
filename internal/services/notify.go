package services

import (
	"context"

	"storefront/internal/notify"

	"go.uber.org/zap"
)

// publish hands committed changes to the notifier. Failures are logged and never reach the caller.
func publish(ctx context.Context, n notify.Notifier, log *zap.Logger, events ...notify.Event) {
	if n == nil {
		log.Debug("notifier is not configured, skipping notifications", zap.Int("events", len(events)))
		return
	}
	for _, event := range events {
		if err := n.Notify(ctx, event); err != nil {
			log.Warn("failed to publish notification",
				zap.String("event_id", event.ID),
				zap.String("kind", string(event.Kind)),
				zap.Error(err),
			)
		}
	}
}
