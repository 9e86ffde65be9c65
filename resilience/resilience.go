// Package resilience guarantees that no network failure reaches application
// logic. Failures are downgraded to a logged diagnostic, a user-visible
// notification and a safe fallback value. Nothing here retries: the first
// failure is terminal for that call and immediately substituted.
package resilience

import "errors"

// Notifier is the optional user-facing message sink. *notify.Dispatcher
// satisfies it; tests use fakes. A nil Notifier disables notifications.
type Notifier interface {
	Warning(message string) string
	Error(message string) string
}

// Fixed user-facing messages. These are intentionally generic: the real
// diagnosis goes to the log, not the user.
const (
	NetworkFailureNotice = "Network error. Some features may be unavailable."
	APIFailureNotice     = "Something went wrong. Please try again."
	CrashNotice          = "An unexpected error occurred."
)

// ErrNetworkFailure marks a response that was substituted at the transport
// level rather than produced by the backend.
var ErrNetworkFailure = errors.New("network request failed")

// IsSentinel reports whether a payload is the synthetic body the transport
// substitutes for a failed request.
func IsSentinel(payload map[string]any) bool {
	failed, ok := payload["error"].(bool)
	return ok && failed
}
