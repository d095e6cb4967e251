package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when no chat transport is configured, e.g. in one-off CLI sweeps.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards notifications with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendPriceDrop logs and discards a notification.
func (n *NoOpNotifier) SendPriceDrop(_ context.Context, drop *PriceDrop) error {
	n.log.Info("notification discarded (no transport configured)",
		"chat_id", drop.ChatID,
		"title", drop.Title,
		"drop_pct", drop.DropPct,
	)
	return nil
}
