// Package proxy routes API calls through the local relay and substitutes
// canned mock data whenever the relay cannot deliver. Calls through this
// path never fail: the result is always a usable payload, real or mocked.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/collegecounselor/counselor/mockdata"
)

// DefaultTimeout bounds a single relay call.
const DefaultTimeout = 10 * time.Second

// Client relays requests through {relay}/api-proxy/{endpoint}.
type Client struct {
	relayURL   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default relay timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a relay client.
func NewClient(relayURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if relayURL == "" {
		return nil, fmt.Errorf("relay URL is required")
	}

	client := &Client{
		relayURL:   strings.TrimRight(relayURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Call relays a request for the given endpoint. An empty method defaults to
// GET; data, when present, is sent as a JSON body. On any failure or
// non-success status the endpoint's mock payload is returned instead, which
// is why the signature carries no error.
func (c *Client) Call(ctx context.Context, endpoint, method string, data any) map[string]any {
	if method == "" {
		method = http.MethodGet
	}

	result, err := c.relay(ctx, endpoint, method, data)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Str("method", method).
			Msg("relay failed, serving mock data")
		return mockdata.Lookup(endpoint)
	}
	return result
}

func (c *Client) relay(ctx context.Context, endpoint, method string, data any) (map[string]any, error) {
	url := fmt.Sprintf("%s/api-proxy/%s", c.relayURL, strings.TrimLeft(endpoint, "/"))

	var reader io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse relay response: %w", err)
	}

	return result, nil
}
