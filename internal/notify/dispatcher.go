package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RecipientSource lists the staff addresses that receive broadcast events.
type RecipientSource interface {
	SuperuserEmails(ctx context.Context) ([]string, error)
}

// Dispatcher emails events to their recipients. It is used both as the broker consumer
// and, when no broker is configured, directly as a Notifier.
type Dispatcher struct {
	mailer     Mailer
	recipients RecipientSource
	log        *zap.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(mailer Mailer, recipients RecipientSource, log *zap.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, recipients: recipients, log: log}
}

// Handle decodes a broker message and delivers it. Malformed messages are logged and
// dropped since redelivery cannot fix them.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		d.log.Error("dropping malformed notification", zap.Error(err), zap.ByteString("body", body))
		return nil
	}
	return d.Notify(ctx, event)
}

// Notify sends the event to its explicit recipients, or to every superuser when it has none.
func (d *Dispatcher) Notify(ctx context.Context, event Event) error {
	to := event.To
	if len(to) == 0 {
		emails, err := d.recipients.SuperuserEmails(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve recipients for %s: %w", event.Kind, err)
		}
		to = emails
	}
	if len(to) == 0 {
		d.log.Debug("no recipients for notification", zap.String("kind", string(event.Kind)))
		return nil
	}

	var errs []error
	for _, addr := range to {
		if err := d.mailer.Send(ctx, addr, event.Subject, event.Body); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", addr, err))
			continue
		}
		d.log.Info("notification sent",
			zap.String("event_id", event.ID),
			zap.String("kind", string(event.Kind)),
			zap.String("to", addr),
		)
	}
	return errors.Join(errs...)
}
