// Package notify forwards reservation events to an external webhook.
// Delivery is fire-and-forget; a failed webhook call is logged and
// never affects the reservation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/events"
)

// payload is the envelope POSTed to the webhook for each event.
type payload struct {
	Topic string          `json:"topic"`
	Event json.RawMessage `json:"event"`
}

// Notifier subscribes to reservation events and delivers them to a
// webhook URL.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewNotifier creates a notifier targeting webhookURL.
func NewNotifier(webhookURL string, logger *slog.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// StartSubscriber listens for reservation events on the event bus and
// forwards each to the webhook. It blocks until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe("hallbook.>")
	if err != nil {
		return fmt.Errorf("notify: subscribe: %w", err)
	}
	defer cancel()

	n.logger.Info("notify: subscriber started", "webhook", n.webhookURL)

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notify: subscriber stopping")
			return nil
		case raw, ok := <-ch:
			if !ok {
				n.logger.Info("notify: subscription channel closed")
				return nil
			}
			n.deliver(ctx, raw)
		}
	}
}

// deliver POSTs one event to the webhook. NATS does not expose the
// subject through the Subscriber interface, so the event payload is
// forwarded as-is under a generic topic.
func (n *Notifier) deliver(ctx context.Context, raw []byte) {
	body, err := json.Marshal(payload{Topic: "hallbook.reservation", Event: raw})
	if err != nil {
		n.logger.Error("notify: marshal payload failed", "err", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("notify: build request failed", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Error("notify: webhook delivery failed", "err", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		n.logger.Error("notify: webhook rejected event", "status", resp.StatusCode)
		return
	}

	n.logger.Debug("notify: event delivered", "status", resp.StatusCode)
}
