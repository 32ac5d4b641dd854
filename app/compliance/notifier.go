package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Notifier delivers a (title, body) message to a human notification channel.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// WebhookNotifier posts structured messages to a configured webhook.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

var _ Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url string, httpClient *http.Client, userAgent string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected: %d %s", resp.StatusCode, resp.Status)
	}

	return nil
}

// NoopNotifier is used when no webhook URL is configured.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

func (NoopNotifier) Notify(ctx context.Context, title, body string) error {
	return nil
}
