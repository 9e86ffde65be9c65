package notify

import "time"

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// ContainerID is the fixed identifier of the page-level mount element.
const ContainerID = "notification-container"

// DefaultDuration is how long a notification stays visible when the caller
// does not specify a duration.
const DefaultDuration = 5 * time.Second

// Notification is a single short-lived user-facing message. Its lifetime is
// owned entirely by the Dispatcher that created it.
type Notification struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Container is the single page-level mount point shared by all
// notifications. It is created lazily, at most once per dispatcher.
type Container struct {
	ID     string `json:"id"`
	Region string `json:"region"`
}

// EventType distinguishes dispatcher lifecycle events.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

// Event is delivered to subscribers when a notification appears or goes away.
type Event struct {
	Type         EventType    `json:"type"`
	Notification Notification `json:"notification"`
}
