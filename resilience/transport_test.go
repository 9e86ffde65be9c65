package resilience

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	warnings []string
	errors   []string
}

func (f *fakeNotifier) Warning(message string) string {
	f.warnings = append(f.warnings, message)
	return "warn-id"
}

func (f *fakeNotifier) Error(message string) string {
	f.errors = append(f.errors, message)
	return "err-id"
}

type failingRoundTripper struct {
	err error
}

func (f *failingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestTransportSubstitutesNetworkFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	transport := NewTransport(&failingRoundTripper{err: errors.New("dial tcp: connection refused")}, zerolog.Nop(), notifier)

	req := httptest.NewRequest(http.MethodGet, "http://backend.invalid/api/profile", nil)
	resp, err := transport.RoundTrip(req)

	require.NoError(t, err, "the wrapped transport must resolve, never reject")
	require.NotNil(t, resp)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, true, payload["error"])
	assert.Equal(t, "Network request failed", payload["message"])
	assert.Equal(t, map[string]any{}, payload["data"])

	require.Len(t, notifier.warnings, 1)
	assert.Equal(t, NetworkFailureNotice, notifier.warnings[0])
}

func TestTransportPassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	notifier := &fakeNotifier{}
	client := &http.Client{Transport: NewTransport(nil, zerolog.Nop(), notifier)}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	// HTTP-level failures are the request client's business, not the
	// transport's.
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Empty(t, notifier.warnings)
}

func TestTransportNilNotifier(t *testing.T) {
	transport := NewTransport(&failingRoundTripper{err: errors.New("timeout")}, zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "http://backend.invalid/api/report", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel(map[string]any{"error": true, "message": "Network request failed"}))
	assert.False(t, IsSentinel(map[string]any{"error": "yes"}))
	assert.False(t, IsSentinel(map[string]any{"name": "John Smith"}))
	assert.False(t, IsSentinel(nil))
}
