// internal/notify/notify.go

// Package notify defines the outbound notification contract. The chat
// platform sender is an external collaborator; this package only carries the
// intent across a narrow interface.
package notify

import (
	"context"
	"log/slog"
)

// Notification describes one merged contribution worth announcing.
type Notification struct {
	Contributor string
	Points      int64
	Title       string
	URL         string
}

// Sender delivers a notification to a channel target. Delivery is
// best-effort: callers never fail a webhook response on a send error.
type Sender interface {
	Notify(ctx context.Context, target string, n Notification) error
}

// LogSender writes notification intents to the log. It stands in for the
// chat-platform sender in deployments without one attached.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Notify logs the notification intent.
func (s *LogSender) Notify(_ context.Context, target string, n Notification) error {
	s.logger.Info("Contribution notification",
		"target", target,
		"contributor", n.Contributor,
		"points", n.Points,
		"title", n.Title,
		"url", n.URL,
	)
	return nil
}
