package resilience

import (
	"context"
	"strings"

	"github.com/collegecounselor/counselor/api"
)

// Client wraps an api.Client so that Get and Post never fail. Request errors
// and transport-substituted sentinel payloads both funnel through the shared
// handler and resolve to the endpoint's fallback value, or an empty map when
// none is configured.
type Client struct {
	api       *api.Client
	handler   *Handler
	fallbacks map[string]map[string]any
}

// ClientOption configures a resilient Client.
type ClientOption func(*Client)

// WithFallbacks installs per-endpoint fallback payloads, keyed by endpoint
// with surrounding slashes ignored.
func WithFallbacks(fallbacks map[string]map[string]any) ClientOption {
	return func(c *Client) {
		for endpoint, payload := range fallbacks {
			c.fallbacks[strings.Trim(endpoint, "/")] = payload
		}
	}
}

// NewClient wraps apiClient with the given failure handler.
func NewClient(apiClient *api.Client, handler *Handler, opts ...ClientOption) *Client {
	c := &Client{
		api:       apiClient,
		handler:   handler,
		fallbacks: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches an endpoint. It never returns an error: failures resolve to
// the endpoint's fallback value.
func (c *Client) Get(ctx context.Context, endpoint string) map[string]any {
	result, err := c.api.Get(ctx, endpoint)
	return c.resolve(endpoint, result, err)
}

// Post sends a JSON body to an endpoint with the same no-failure contract
// as Get.
func (c *Client) Post(ctx context.Context, endpoint string, body any) map[string]any {
	result, err := c.api.Post(ctx, endpoint, body)
	return c.resolve(endpoint, result, err)
}

func (c *Client) resolve(endpoint string, result map[string]any, err error) map[string]any {
	if err == nil && !IsSentinel(result) {
		return result
	}
	if err == nil {
		// The transport already swallowed a network failure.
		err = ErrNetworkFailure
	}
	return c.handler.HandleAPIError(err, c.fallbacks[strings.Trim(endpoint, "/")], "")
}
