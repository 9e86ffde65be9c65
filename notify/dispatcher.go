// Package notify renders transient, auto-dismissing user-visible messages.
// The dispatcher does not care why a message was triggered; error handling,
// servers and commands all funnel through the same Show call.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Dispatcher owns the notification container and every live notification.
// All methods are safe for concurrent use.
type Dispatcher struct {
	mu              sync.Mutex
	container       *Container
	active          map[string]Notification
	timers          map[string]*time.Timer
	subs            map[chan Event]struct{}
	defaultDuration time.Duration
	logger          zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDefaultDuration overrides the default auto-dismiss duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.defaultDuration = d
		}
	}
}

// NewDispatcher creates a notification dispatcher. The container is not
// created until the first notification is shown or EnsureContainer is called.
func NewDispatcher(logger zerolog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		active:          make(map[string]Notification),
		timers:          make(map[string]*time.Timer),
		subs:            make(map[chan Event]struct{}),
		defaultDuration: DefaultDuration,
		logger:          logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// EnsureContainer lazily creates the shared container. Repeated calls from
// independent initialization paths are safe and always return the same
// single container.
func (d *Dispatcher) EnsureContainer() *Container {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ensureContainerLocked()
}

func (d *Dispatcher) ensureContainerLocked() *Container {
	if d.container == nil {
		d.container = &Container{ID: ContainerID, Region: "top-right"}
		d.logger.Debug().Str("id", ContainerID).Msg("notification container created")
	}
	return d.container
}

// Show displays a notification and returns its id. A zero duration falls
// back to the dispatcher default; the notification dismisses itself when the
// duration elapses. Notification ids are random, so rapid successive calls
// never collide.
func (d *Dispatcher) Show(message string, severity Severity, duration time.Duration) string {
	if severity == "" {
		severity = SeverityInfo
	}
	if duration <= 0 {
		duration = d.defaultDuration
	}

	n := Notification{
		ID:         uuid.NewString(),
		Message:    message,
		Severity:   severity,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}

	d.mu.Lock()
	d.ensureContainerLocked()
	d.active[n.ID] = n
	d.timers[n.ID] = time.AfterFunc(duration, func() {
		d.Dismiss(n.ID)
	})
	d.mu.Unlock()

	d.logger.Debug().
		Str("id", n.ID).
		Str("severity", string(severity)).
		Str("message", message).
		Msg("notification shown")

	d.broadcast(Event{Type: EventShown, Notification: n})
	return n.ID
}

// Dismiss removes a notification before its timer fires. Dismissing an
// unknown or already-expired id is a no-op.
func (d *Dispatcher) Dismiss(id string) {
	d.mu.Lock()
	n, ok := d.active[id]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.active, id)
	if timer := d.timers[id]; timer != nil {
		timer.Stop()
		delete(d.timers, id)
	}
	d.mu.Unlock()

	d.broadcast(Event{Type: EventDismissed, Notification: n})
}

// Info shows an informational notification with the default duration.
func (d *Dispatcher) Info(message string) string {
	return d.Show(message, SeverityInfo, 0)
}

// Success shows a success notification with the default duration.
func (d *Dispatcher) Success(message string) string {
	return d.Show(message, SeveritySuccess, 0)
}

// Warning shows a warning notification with the default duration.
func (d *Dispatcher) Warning(message string) string {
	return d.Show(message, SeverityWarning, 0)
}

// Error shows a danger notification with the default duration.
func (d *Dispatcher) Error(message string) string {
	return d.Show(message, SeverityDanger, 0)
}

// Active returns a snapshot of the currently visible notifications.
func (d *Dispatcher) Active() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Notification, 0, len(d.active))
	for _, n := range d.active {
		out = append(out, n)
	}
	return out
}

// Subscribe registers a sink for lifecycle events. The returned channel is
// buffered; events for subscribers that fall behind are dropped rather than
// blocking the dispatcher.
func (d *Dispatcher) Subscribe() chan Event {
	ch := make(chan Event, 16)
	d.mu.Lock()
	d.subs[ch] = struct{}{}
	d.mu.Unlock()
	return ch
}

// Unsubscribe detaches a sink and closes its channel.
func (d *Dispatcher) Unsubscribe(ch chan Event) {
	d.mu.Lock()
	if _, ok := d.subs[ch]; ok {
		delete(d.subs, ch)
		close(ch)
	}
	d.mu.Unlock()
}

// Close dismisses every live notification and detaches all subscribers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	for id, timer := range d.timers {
		timer.Stop()
		delete(d.timers, id)
	}
	d.active = make(map[string]Notification)
	for ch := range d.subs {
		delete(d.subs, ch)
		close(ch)
	}
	d.mu.Unlock()
}

func (d *Dispatcher) broadcast(ev Event) {
	// Sends happen under the same lock that Unsubscribe and Close take
	// before closing a channel, so a send can never race a close. The
	// default arm keeps each send non-blocking.
	d.mu.Lock()
	defer d.mu.Unlock()

	for ch := range d.subs {
		select {
		case ch <- ev:
		default:
			d.logger.Debug().Str("id", ev.Notification.ID).Msg("dropping event for slow subscriber")
		}
	}
}
