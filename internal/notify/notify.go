// Copyright (c) 2026 CityInfo API. All rights reserved.

/*
Package notify delivers operational notifications about catalog changes.

The primary consumer is the point-of-interest delete flow, which announces
every removal so that operations staff can audit destructive actions.

Delivery Modes:

  - LocalNotifier: writes the notification to the structured log. Used in
    development and in deployments without a message broker.
  - CloudNotifier: publishes the notification to a Redis pub/sub channel for
    external consumers.

Both modes are fire-and-forget: a failed notification never fails the API
request that triggered it.
*/
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/constants"
)

// Notifier is the outbound notification port used by the application layer.
type Notifier interface {
	// Send delivers a notification. Implementations must not block the caller
	// beyond a short timeout and must swallow delivery failures after logging.
	Send(ctx context.Context, subject, message string)
}

// # Local Delivery

// LocalNotifier writes notifications to the structured log.
type LocalNotifier struct {
	logger *slog.Logger
	from   string
	to     string
}

// NewLocalNotifier creates a log-backed notifier.
//
// # Parameters
//   - logger: Structured logger that receives the notifications.
//   - from, to: Informational sender/recipient identities included in each entry.
func NewLocalNotifier(logger *slog.Logger, from, to string) *LocalNotifier {
	return &LocalNotifier{logger: logger, from: from, to: to}
}

// Send implements [Notifier] by emitting a structured log entry.
func (n *LocalNotifier) Send(ctx context.Context, subject, message string) {
	n.logger.InfoContext(ctx, "notification_sent",
		slog.String("mode", "local"),
		slog.String("from", n.from),
		slog.String("to", n.to),
		slog.String("subject", subject),
		slog.String("message", message),
	)
}

// # Cloud Delivery

// envelope is the JSON payload published to the notification channel.
type envelope struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CloudNotifier publishes notifications to a Redis pub/sub channel.
type CloudNotifier struct {
	client *redis.Client
	logger *slog.Logger
	from   string
	to     string
}

// NewCloudNotifier creates a Redis-backed notifier publishing to
// [constants.NotifyChannel].
func NewCloudNotifier(client *redis.Client, logger *slog.Logger, from, to string) *CloudNotifier {
	return &CloudNotifier{client: client, logger: logger, from: from, to: to}
}

// Send implements [Notifier] by publishing to the pub/sub channel.
//
// Failures are logged and swallowed: notification delivery is best-effort
// and must never propagate into the request that triggered it.
func (n *CloudNotifier) Send(ctx context.Context, subject, message string) {
	payload, err := json.Marshal(envelope{
		From:      n.from,
		To:        n.to,
		Subject:   subject,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "notification_encode_failed", slog.Any("error", err))
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := n.client.Publish(publishCtx, constants.NotifyChannel, payload).Err(); err != nil {
		n.logger.ErrorContext(ctx, "notification_publish_failed",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return
	}

	n.logger.InfoContext(ctx, "notification_sent",
		slog.String("mode", "cloud"),
		slog.String("channel", constants.NotifyChannel),
		slog.String("subject", subject),
	)
}
