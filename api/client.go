package api

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
)

// DefaultTimeout is applied when no timeout option is given.
const DefaultTimeout = 10 * time.Second

// Client talks to the counselor backend using the four JSON verbs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. Use this to
// install a decorated transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request against {base}/api/{endpoint}.
func (c *Client) Get(ctx context.Context, endpoint string) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodPut, endpoint, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil)
}

// doRequest performs an HTTP request and decodes the JSON response.
// Any status outside the 2xx range is returned as an *Error.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any) (map[string]any, error) {
	url := fmt.Sprintf("%s/api/%s", c.baseURL, strings.TrimLeft(endpoint, "/"))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("API request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Body: string(data)}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("API returned an error status")
		return nil, apiErr
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
