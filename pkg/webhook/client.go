package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client delivers push payloads and heartbeats to the Explorer's webhook
// endpoint over authenticated HTTP, at-least-once (§4.5). Retry/backoff is
// hand-rolled rather than pulled from a backoff library, grounded on
// pkg/intent/discovery.go's monitoringLoop retry-on-init loop
// (backoff := time.Duration(1<<retries) * time.Second).
type Client struct {
	URL        string
	Token      string
	HTTP       *http.Client
	MaxRetries int

	log *log.Logger
}

func NewClient(url, token string) *Client {
	return &Client{
		URL:        url,
		Token:      token,
		HTTP:       http.DefaultClient,
		MaxRetries: 5,
		log:        log.New(log.Writer(), "[webhook] ", log.LstdFlags),
	}
}

// Deliver posts a push payload. A 2xx response is success; a 4xx response
// is logged and dropped (the Explorer rejected the payload itself, retrying
// would only repeat the rejection); a 5xx or transport failure is retried
// with exponential backoff up to MaxRetries, then reported as a delivery
// failure that drives the Indexer State Machine to Stopped (§7).
func (c *Client) Deliver(ctx context.Context, payload PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}
	return c.postWithRetry(ctx, body)
}

// Heartbeat posts a liveness ping carrying the current cursor.
func (c *Client) Heartbeat(ctx context.Context, payload HeartbeatPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal heartbeat payload: %w", err)
	}
	return c.postWithRetry(ctx, body)
}

func (c *Client) postWithRetry(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Printf("⚠️ retrying delivery in %s (attempt %d/%d)", backoff, attempt, c.MaxRetries)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		status, err := c.post(ctx, body)
		if err == nil {
			if status >= 200 && status < 300 {
				return nil
			}
			if status >= 400 && status < 500 {
				c.log.Printf("❌ webhook rejected payload with status %d, dropping", status)
				return nil
			}
			lastErr = fmt.Errorf("webhook responded with status %d", status)
			continue
		}
		lastErr = err
	}
	return fmt.Errorf("delivery failed after %d attempts: %w", c.MaxRetries+1, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
