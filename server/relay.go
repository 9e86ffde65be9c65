package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/collegecounselor/counselor/mockdata"
)

var relayMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// handleRelay forwards /api-proxy/{endpoint} to the upstream backend. Any
// failure on the way there comes back as a 200 with the endpoint's mock
// payload: the page always renders something.
func (s *Server) handleRelay(c echo.Context) error {
	if !relayMethods[c.Request().Method] {
		return c.JSON(http.StatusMethodNotAllowed, map[string]any{
			"error":   true,
			"message": "method not allowed",
		})
	}

	endpoint := strings.Trim(c.Param("*"), "/")

	body, err := s.forward(c, endpoint)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Str("method", c.Request().Method).
			Msg("upstream unavailable, serving mock data")
		return c.JSON(http.StatusOK, mockdata.Lookup(endpoint))
	}

	return c.JSONBlob(http.StatusOK, body)
}

func (s *Server) forward(c echo.Context, endpoint string) ([]byte, error) {
	req := c.Request()

	url := fmt.Sprintf("%s/api/%s", strings.TrimRight(s.cfg.UpstreamURL, "/"), endpoint)
	if raw := req.URL.RawQuery; raw != "" {
		url += "?" + raw
	}

	upstream, err := http.NewRequestWithContext(req.Context(), req.Method, url, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	upstream.Header.Set("Accept", "application/json")
	if ct := req.Header.Get("Content-Type"); ct != "" {
		upstream.Header.Set("Content-Type", ct)
	}

	resp, err := s.httpClient.Do(upstream)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned a non-JSON body")
	}

	return body, nil
}
