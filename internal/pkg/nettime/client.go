package nettime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultURL     = "https://worldtimeapi.org/api/timezone/Etc/UTC"
	DefaultTimeout = 2 * time.Second
)

// Client reads the current time from a trusted HTTP time API.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type timeResponse struct {
	Datetime string `json:"datetime"`
}

// NetworkTime returns nil when the time cannot be verified for any reason.
func (c *Client) NetworkTime(ctx context.Context) *time.Time {
	t, err := c.fetch(ctx)
	if err != nil {
		slog.Warn("network time unavailable", "url", c.url, "error", err)
		return nil
	}
	return &t
}

func (c *Client) fetch(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return time.Time{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("decode response: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, body.Datetime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse datetime %q: %w", body.Datetime, err)
	}
	return t, nil
}
