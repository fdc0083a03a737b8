// Package notifier delivers new-message notifications to recipients. Delivery
// is fire-and-forget: a failed notification never fails the send that
// triggered it.
package notifier

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewMessageEvent is the payload handed to the downstream mailer.
type NewMessageEvent struct {
	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	SenderName     string    `json:"sender_name"`
	Anonymous      bool      `json:"anonymous"`
}

type Notifier interface {
	NotifyNewMessage(ctx context.Context, event NewMessageEvent) error
	Close() error
}

// LogNotifier is the fallback when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyNewMessage(_ context.Context, event NewMessageEvent) error {
	slog.Info("new message notification",
		"recipient_id", event.RecipientID,
		"sender", event.SenderName,
		"anonymous", event.Anonymous,
	)
	return nil
}

func (LogNotifier) Close() error {
	return nil
}
