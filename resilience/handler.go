package resilience

import (
	"github.com/rs/zerolog"
)

// RenderFunc renders fallback data into a named page element.
type RenderFunc func(elementID string, data map[string]any)

// Handler is the single substitution point every failure funnels through.
// Both optional collaborators are injected at construction and checked once,
// not guessed at per call site.
type Handler struct {
	logger   zerolog.Logger
	notifier Notifier
	render   RenderFunc
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithNotifier attaches a user-facing message sink.
func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithRenderer attaches a fallback-data renderer.
func WithRenderer(fn RenderFunc) HandlerOption {
	return func(h *Handler) {
		h.render = fn
	}
}

// NewHandler creates the shared error handler.
func NewHandler(logger zerolog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleAPIError logs the error, emits a danger notification when a notifier
// is attached, renders the fallback into elementID when both a renderer and
// a target are present, and returns the fallback data. A nil fallback comes
// back as an empty map, so callers always receive a usable value.
func (h *Handler) HandleAPIError(err error, fallback map[string]any, elementID string) map[string]any {
	h.logger.Error().
		Err(err).
		Str("element", elementID).
		Msg("API error handled")

	if h.notifier != nil {
		h.notifier.Error(APIFailureNotice)
	}

	if fallback == nil {
		fallback = map[string]any{}
	}

	if h.render != nil && elementID != "" {
		h.render(elementID, fallback)
	}

	return fallback
}
