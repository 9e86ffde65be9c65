package resilience

import (
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// networkFailureBody is what callers receive instead of a transport error.
const networkFailureBody = `{"error":true,"message":"Network request failed","data":{}}`

// Transport is an http.RoundTripper decorator. Any transport-level failure
// (connection refused, DNS, timeout) is logged, surfaced as a warning
// notification and replaced with a synthetic 200 response carrying a sentinel
// body, so RoundTrip never returns a non-nil error. Callers opt in by
// installing it on their http.Client; nothing is patched globally.
type Transport struct {
	base     http.RoundTripper
	logger   zerolog.Logger
	notifier Notifier
}

// NewTransport wraps base, defaulting to http.DefaultTransport when base is
// nil. The notifier may be nil.
func NewTransport(base http.RoundTripper, logger zerolog.Logger, notifier Notifier) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, logger: logger, notifier: notifier}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	t.logger.Error().
		Err(err).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("network request failed")

	if t.notifier != nil {
		t.notifier.Warning(NetworkFailureNotice)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(networkFailureBody)),
		ContentLength: int64(len(networkFailureBody)),
		Request:       req,
	}, nil
}
