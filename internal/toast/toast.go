// Package toast is the process-wide queue of ephemeral user-facing
// messages. Every enqueued toast schedules its own expiry; explicit
// dismissal and timer expiry converge on one idempotent removal, so a
// toast can never be removed twice.
package toast

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a toast for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration applies when the caller does not specify one.
const DefaultDuration = 5 * time.Second

// Toast is one queued message.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}

// Dispatcher owns the toast queue. Toasts render in insertion order;
// removal out of the middle leaves the relative order of the rest intact.
type Dispatcher struct {
	mu        sync.Mutex
	toasts    []Toast
	timers    map[string]*time.Timer
	observers []func([]Toast)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{timers: map[string]*time.Timer{}}
}

// OnChange registers an observer called with a snapshot of the queue after
// every change.
func (d *Dispatcher) OnChange(fn func([]Toast)) {
	d.mu.Lock()
	d.observers = append(d.observers, fn)
	d.mu.Unlock()
}

func (d *Dispatcher) Success(message string, duration ...time.Duration) string {
	return d.push(SeveritySuccess, message, duration)
}

func (d *Dispatcher) Error(message string, duration ...time.Duration) string {
	return d.push(SeverityError, message, duration)
}

func (d *Dispatcher) Warning(message string, duration ...time.Duration) string {
	return d.push(SeverityWarning, message, duration)
}

func (d *Dispatcher) Info(message string, duration ...time.Duration) string {
	return d.push(SeverityInfo, message, duration)
}

func (d *Dispatcher) push(severity Severity, message string, duration []time.Duration) string {
	dur := DefaultDuration
	if len(duration) > 0 {
		dur = duration[0]
	}

	now := time.Now()
	// Millisecond timestamps collide under load; the random suffix keeps
	// ids unique within the same millisecond.
	id := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])

	t := Toast{
		ID:        id,
		Message:   message,
		Severity:  severity,
		Duration:  dur,
		CreatedAt: now,
	}

	d.mu.Lock()
	d.toasts = append(d.toasts, t)
	d.timers[id] = time.AfterFunc(dur, func() { d.remove(id) })
	d.mu.Unlock()

	d.notify()
	return id
}

// Dismiss removes a toast immediately. Dismissing an unknown or already
// expired id is a no-op.
func (d *Dispatcher) Dismiss(id string) {
	d.mu.Lock()
	if timer, ok := d.timers[id]; ok {
		timer.Stop()
	}
	d.mu.Unlock()

	d.remove(id)
}

// remove is the single removal path shared by timers and Dismiss.
func (d *Dispatcher) remove(id string) {
	d.mu.Lock()
	delete(d.timers, id)

	idx := -1
	for i := range d.toasts {
		if d.toasts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		d.mu.Unlock()
		return
	}
	d.toasts = append(d.toasts[:idx], d.toasts[idx+1:]...)
	d.mu.Unlock()

	d.notify()
}

// Flush drops every queued toast and cancels their timers. Used from the
// session teardown list on logout.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	for id, timer := range d.timers {
		timer.Stop()
		delete(d.timers, id)
	}
	changed := len(d.toasts) > 0
	d.toasts = nil
	d.mu.Unlock()

	if changed {
		d.notify()
	}
}

// Snapshot returns the queue in insertion order.
func (d *Dispatcher) Snapshot() []Toast {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Toast, len(d.toasts))
	copy(out, d.toasts)
	return out
}

func (d *Dispatcher) notify() {
	d.mu.Lock()
	observers := make([]func([]Toast), len(d.observers))
	copy(observers, d.observers)
	snapshot := make([]Toast, len(d.toasts))
	copy(snapshot, d.toasts)
	d.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
