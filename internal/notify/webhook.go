package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// WebhookDelivery posts notifications to an external push-delivery endpoint.
// A missing endpoint URL is valid configuration and makes every push report
// failure.
type WebhookDelivery struct {
	endpoint string
	client   *http.Client
}

// NewWebhookDelivery wires the delivery endpoint.
func NewWebhookDelivery(client *http.Client, endpoint string) *WebhookDelivery {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &WebhookDelivery{endpoint: endpoint, client: client}
}

type webhookMessage struct {
	ID      string            `json:"id"`
	UserID  string            `json:"userId"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Push delivers one notification. Every message carries a fresh UUID so the
// receiving side can deduplicate retries.
func (d *WebhookDelivery) Push(ctx context.Context, userID, title, body string, payload map[string]string) bool {
	if d.endpoint == "" {
		log.Printf("notify: delivery endpoint not configured, dropping notification for %s", userID)
		return false
	}

	msg := webhookMessage{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Body:    body,
		Payload: payload,
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("notify: marshal failed: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(raw))
	if err != nil {
		log.Printf("notify: build request failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("notify: delivery failed for %s: %v", userID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("notify: delivery endpoint returned %d for %s", resp.StatusCode, userID)
		return false
	}
	return true
}
