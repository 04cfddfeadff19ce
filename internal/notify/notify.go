// Package notify implements an ephemeral queue of user notifications
// (toasts). Every toast expires after a fixed delay and is always
// removed by id, never by position.
//
// There is no cap on the number of concurrent toasts.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the default time-to-live of a toast.
const DefaultTTL = 3000 * time.Millisecond

// Kind is the kind of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a notification shown to the user.
type Toast struct {
	// ID uniquely identifies the toast.
	ID string

	// Kind is the toast kind.
	Kind Kind

	// Message is the message to show.
	Message string

	// CreatedAt is when the toast was created.
	CreatedAt time.Time
}

// Timer is a cancellable timer, as returned by [time.AfterFunc].
type Timer interface {
	Stop() bool
}

// Clock abstracts the passing of time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// systemClock is the [Clock] using the time package.
type systemClock struct{}

var _ Clock = systemClock{}

// Now implements Clock.
func (systemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Clock.
func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// EventType is the type of an [Event].
type EventType string

const (
	EventAdded   EventType = "added"
	EventRemoved EventType = "removed"
)

// Event is emitted whenever the queue changes.
type Event struct {
	Type  EventType
	Toast Toast
}

// Config contains the OPTIONAL [*Bus] settings.
type Config struct {
	// Clock is the clock to use. When nil, we use the system clock.
	Clock Clock

	// Listener is called, outside of any lock, after each change.
	Listener func(ev Event)

	// TTL is the time-to-live of toasts. When zero, we use [DefaultTTL].
	TTL time.Duration
}

type entry struct {
	toast Toast
	timer Timer
}

// Bus is the notification queue. The zero value is invalid; use [NewBus].
type Bus struct {
	clock    Clock
	closed   bool
	entries  []*entry
	listener func(ev Event)
	mu       sync.Mutex
	ttl      time.Duration
}

// NewBus creates a new [*Bus].
func NewBus(config Config) *Bus {
	clock := config.Clock
	if clock == nil {
		clock = systemClock{}
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Bus{
		clock:    clock,
		listener: config.Listener,
		ttl:      ttl,
	}
}

// Notify appends a toast to the queue and returns its id. The toast
// is automatically removed once the TTL has elapsed.
func (b *Bus) Notify(kind Kind, message string) string {
	toast := Toast{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return toast.ID
	}
	toast.CreatedAt = b.clock.Now()
	e := &entry{toast: toast}
	b.entries = append(b.entries, e)
	e.timer = b.clock.AfterFunc(b.ttl, func() {
		b.remove(toast.ID)
	})
	b.mu.Unlock()
	b.emit(Event{Type: EventAdded, Toast: toast})
	return toast.ID
}

// Success is a shortcut for Notify(KindSuccess, message).
func (b *Bus) Success(message string) string {
	return b.Notify(KindSuccess, message)
}

// Error is a shortcut for Notify(KindError, message).
func (b *Bus) Error(message string) string {
	return b.Notify(KindError, message)
}

// Dismiss removes the toast with the given id before it expires. It
// returns false if there is no such toast.
func (b *Bus) Dismiss(id string) bool {
	return b.remove(id)
}

func (b *Bus) remove(id string) bool {
	b.mu.Lock()
	var found *entry
	for idx, e := range b.entries {
		if e.toast.ID == id {
			found = e
			b.entries = append(b.entries[:idx:idx], b.entries[idx+1:]...)
			break
		}
	}
	b.mu.Unlock()
	if found == nil {
		return false
	}
	if found.timer != nil {
		found.timer.Stop()
	}
	b.emit(Event{Type: EventRemoved, Toast: found.toast})
	return true
}

// Toasts returns a copy of the queue in insertion order.
func (b *Bus) Toasts() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Toast, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.toast)
	}
	return out
}

// Close stops all the timers and empties the queue. After Close,
// Notify does not enqueue anymore.
func (b *Bus) Close() {
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.closed = true
	b.mu.Unlock()
	for _, e := range entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

func (b *Bus) emit(ev Event) {
	if b.listener != nil {
		b.listener(ev)
	}
}
