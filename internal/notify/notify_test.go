package notify

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock is a [Clock] where time only advances when calling Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *fakeClock
	deadline time.Time
	fn       func()
	stopped  bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// Advance moves the clock forward and fires the expired timers in deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.deadline.After(c.now) {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fn()
	}
}

func messages(b *Bus) []string {
	out := []string{}
	for _, toast := range b.Toasts() {
		out = append(out, toast.Message)
	}
	return out
}

func TestToastExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	bus := NewBus(Config{Clock: clock})
	defer bus.Close()
	id := bus.Notify(KindSuccess, "File uploaded successfully")
	if id == "" {
		t.Fatal("expected a non-empty id")
	}
	clock.Advance(1 * time.Millisecond)
	if diff := cmp.Diff([]string{"File uploaded successfully"}, messages(bus)); diff != "" {
		t.Fatal(diff)
	}
	clock.Advance(3000 * time.Millisecond)
	if diff := cmp.Diff([]string{}, messages(bus)); diff != "" {
		t.Fatal(diff)
	}
}

func TestExpiryRemovesByID(t *testing.T) {
	clock := newFakeClock()
	bus := NewBus(Config{Clock: clock})
	defer bus.Close()
	first := bus.Error("Upload failed: HTTP 500")
	clock.Advance(1000 * time.Millisecond)
	bus.Success("second")
	clock.Advance(1000 * time.Millisecond)
	bus.Success("third")

	// dismissing the first toast shifts positions: expiry of the
	// second toast must not remove the third one
	if !bus.Dismiss(first) {
		t.Fatal("expected to dismiss the first toast")
	}
	clock.Advance(2000 * time.Millisecond)
	if diff := cmp.Diff([]string{"third"}, messages(bus)); diff != "" {
		t.Fatal(diff)
	}
	clock.Advance(1000 * time.Millisecond)
	if diff := cmp.Diff([]string{}, messages(bus)); diff != "" {
		t.Fatal(diff)
	}
}

func TestInsertionOrderAndNoCap(t *testing.T) {
	clock := newFakeClock()
	bus := NewBus(Config{Clock: clock})
	defer bus.Close()
	var expect []string
	for _, msg := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		bus.Success(msg)
		expect = append(expect, msg)
	}
	if diff := cmp.Diff(expect, messages(bus)); diff != "" {
		t.Fatal(diff)
	}
	toasts := bus.Toasts()
	if toasts[0].Kind != KindSuccess || !toasts[0].CreatedAt.Equal(clock.Now()) {
		t.Fatal("unexpected toast", toasts[0])
	}
}

func TestDismiss(t *testing.T) {
	clock := newFakeClock()
	bus := NewBus(Config{Clock: clock})
	defer bus.Close()
	id := bus.Success("Processing completed successfully")
	if !bus.Dismiss(id) {
		t.Fatal("expected true")
	}
	if bus.Dismiss(id) {
		t.Fatal("expected false on second dismiss")
	}
	if bus.Dismiss("nonexistent") {
		t.Fatal("expected false for unknown id")
	}
	if len(bus.Toasts()) != 0 {
		t.Fatal("expected empty queue")
	}
}

func TestListener(t *testing.T) {
	clock := newFakeClock()
	var events []EventType
	bus := NewBus(Config{
		Clock: clock,
		Listener: func(ev Event) {
			events = append(events, ev.Type)
		},
	})
	defer bus.Close()
	bus.Success("one")
	id := bus.Error("two")
	bus.Dismiss(id)
	clock.Advance(DefaultTTL)
	expect := []EventType{EventAdded, EventAdded, EventRemoved, EventRemoved}
	if diff := cmp.Diff(expect, events); diff != "" {
		t.Fatal(diff)
	}
}

func TestClose(t *testing.T) {
	clock := newFakeClock()
	bus := NewBus(Config{Clock: clock})
	bus.Success("one")
	bus.Close()
	if len(bus.Toasts()) != 0 {
		t.Fatal("expected empty queue after Close")
	}
	bus.Success("two")
	if len(bus.Toasts()) != 0 {
		t.Fatal("expected Notify to be a no-op after Close")
	}
	clock.Advance(DefaultTTL)
}

func TestSystemClock(t *testing.T) {
	bus := NewBus(Config{TTL: 10 * time.Millisecond})
	defer bus.Close()
	bus.Success("ephemeral")
	deadline := time.Now().Add(5 * time.Second)
	for len(bus.Toasts()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
