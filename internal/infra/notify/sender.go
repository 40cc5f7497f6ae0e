package notify

import (
	"context"
	"log/slog"
)

// Sender delivers a templated message to a buyer or organizer contact.
// Fire-and-forget from the core's perspective: failures are surfaced to the
// dispatcher for bookkeeping but never block settlement.
type Sender interface {
	Send(ctx context.Context, contact, templateID string, params map[string]string) error
}

// LogSender records deliveries in the service log. Message transport itself
// lives in the messaging service, outside this system's boundary.
type LogSender struct{}

func NewLogSender() Sender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, contact, templateID string, params map[string]string) error {
	slog.Info("notification dispatched",
		"contact", contact,
		"template", templateID,
		"params", params)
	return nil
}
