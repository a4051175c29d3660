// Package notify forwards generation events to an external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Event is the JSON body sent to the configured webhook URL for each
// generation request.
type Event struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	Text      string `json:"text"`
	Prompt    string `json:"prompt,omitempty"`
	Style     string `json:"style"`
	Provider  string `json:"provider,omitempty"`
	Message   string `json:"message"`
	HasImage  bool   `json:"has_image"`
	Timestamp int64  `json:"timestamp"`
}

// Filters controls which events are forwarded to the webhook endpoint.
type Filters struct {
	AIOnly       bool // Only forward events from the AI background flow.
	SkipRejected bool // Drop events where no image was produced.
}

// WebhookSender delivers events to an external HTTP endpoint.
type WebhookSender struct {
	url     string
	filters Filters
	client  *http.Client
	log     *slog.Logger
}

// NewWebhookSender creates a WebhookSender ready to POST events to the given
// url. If url is empty the sender is a no-op.
func NewWebhookSender(url string, filters Filters, log *slog.Logger) *WebhookSender {
	return &WebhookSender{
		url:     url,
		filters: filters,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (w *WebhookSender) Enabled() bool {
	return w != nil && w.url != ""
}

// Send delivers ev to the configured endpoint. It returns nil without
// sending when no URL is configured or the filters exclude the event.
// Non-2xx responses are logged, not returned.
func (w *WebhookSender) Send(ctx context.Context, ev *Event) error {
	if !w.Enabled() {
		return nil
	}

	if w.filters.AIOnly && ev.Mode != "ai" {
		w.log.Debug("webhook skipping non-ai event", "id", ev.ID)
		return nil
	}
	if w.filters.SkipRejected && !ev.HasImage {
		w.log.Debug("webhook skipping rejected event", "id", ev.ID)
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("webhook marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Error("webhook delivery failed", "error", err, "id", ev.ID)
		return fmt.Errorf("webhook POST: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		w.log.Info("webhook delivered", "status", resp.StatusCode, "id", ev.ID)
	} else {
		w.log.Warn("webhook non-2xx response", "status", resp.StatusCode, "id", ev.ID)
	}

	return nil
}
