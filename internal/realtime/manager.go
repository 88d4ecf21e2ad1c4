// Package realtime owns the client's single live push channel: an SSE
// stream scoped to the authenticated subject, with automatic reconnection.
//
// At most one connection exists process-wide. Handlers are registered on
// the manager, not on a connection, so subscriptions survive reconnects
// without re-registration.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"careerhub/internal/api"
	"careerhub/internal/logging"
)

// State is the liveness of the channel.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// errConnectionDroppedEarly marks a connection that died before it lived
// through one backoff interval; such drops stay on the backoff schedule.
var errConnectionDroppedEarly = errors.New("connection dropped early")

// Handler receives push events of the class it was subscribed for.
type Handler func(Event)

// Notifier is the best-effort local desktop notification hook. It is
// invoked on its own goroutine and its failures are ignored; it can never
// block or break event dispatch.
type Notifier interface {
	Notify(title, message string)
}

// Manager maintains the client's one realtime connection.
type Manager struct {
	eventsURL      string
	http           *http.Client
	tokenSource    func() string
	notifier       Notifier
	log            logging.Logger
	initialBackoff time.Duration
	maxBackoff     time.Duration

	mu       sync.Mutex
	handlers map[string]Handler
	subject  string
	cancel   context.CancelFunc
	done     chan struct{}

	state atomic.Int32
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

func WithHTTPClient(h *http.Client) ManagerOption {
	return func(m *Manager) { m.http = h }
}

func WithTokenSource(ts func() string) ManagerOption {
	return func(m *Manager) { m.tokenSource = ts }
}

func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

func WithLogger(l logging.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// WithBackoff overrides the reconnect backoff bounds.
func WithBackoff(initial, max time.Duration) ManagerOption {
	return func(m *Manager) {
		m.initialBackoff = initial
		m.maxBackoff = max
	}
}

// NewManager creates a manager for the subscribe endpoint at eventsURL.
// No connection is made until Open.
func NewManager(eventsURL string, opts ...ManagerOption) *Manager {
	m := &Manager{
		eventsURL: eventsURL,
		// No client timeout: the stream is long-lived by design.
		http:           &http.Client{},
		log:            logging.NewNop(),
		handlers:       map[string]Handler{},
		initialBackoff: 500 * time.Millisecond,
		maxBackoff:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open ensures exactly one live connection joined under subjectID. A call
// for the subject already joined is a no-op; a call for a different subject
// tears the existing connection down first and only then connects, so two
// connections never coexist, even transiently. ctx bounds the lifetime of
// the connection and its reconnect loop.
func (m *Manager) Open(ctx context.Context, subjectID string) {
	m.mu.Lock()
	if m.cancel != nil && m.subject == subjectID {
		m.mu.Unlock()
		return
	}
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	doneCh := make(chan struct{})

	m.mu.Lock()
	m.subject = subjectID
	m.cancel = cancelRun
	m.done = doneCh
	m.mu.Unlock()

	go m.run(runCtx, subjectID, doneCh)
}

// Close tears down the connection and clears the handle. Calling Close
// with no connection open is a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.subject = ""
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Subscribe registers the handler for a named push-event class, replacing
// any previous handler for that class.
func (m *Manager) Subscribe(event string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = h
}

// Unsubscribe removes the handler for the event class, if any.
func (m *Manager) Unsubscribe(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, event)
}

// Subject reports the subject id the current connection is joined under,
// or "" when closed.
func (m *Manager) Subject() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subject
}

// State reports current liveness.
func (m *Manager) State() State {
	return State(m.state.Load())
}

func (m *Manager) run(ctx context.Context, subject string, done chan struct{}) {
	defer close(done)
	defer m.state.Store(int32(StateDisconnected))

	for ctx.Err() == nil {
		backoff := retry.WithCappedDuration(m.maxBackoff, retry.NewFibonacci(m.initialBackoff))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			started := time.Now()
			connected, streamErr := m.stream(ctx, subject)
			if streamErr != nil && !connected {
				return retry.RetryableError(streamErr)
			}
			if time.Since(started) < m.initialBackoff {
				// Accepted and dropped near-instantly: a server in that
				// state would otherwise be redialed in a tight loop, so
				// keep the current backoff schedule going.
				return retry.RetryableError(errConnectionDroppedEarly)
			}
			// The connection was established, lived, and later dropped:
			// restart with a fresh backoff schedule.
			return nil
		})
		if err != nil && ctx.Err() != nil {
			return
		}
	}
}

// stream runs a single connection attempt to completion. connected reports
// whether the subscription was ever established.
func (m *Manager) stream(ctx context.Context, subject string) (connected bool, err error) {
	m.state.Store(int32(StateConnecting))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.eventsURL, nil)
	if err != nil {
		return false, err
	}
	// Joining the subject's room is carried by the subscribe request
	// itself; the server scopes pushes to this subject.
	q := url.Values{"user": {subject}}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if m.tokenSource != nil {
		if tok := m.tokenSource(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := m.http.Do(req)
	if err != nil {
		m.state.Store(int32(StateDisconnected))
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.state.Store(int32(StateDisconnected))
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return false, fmt.Errorf("subscribe: unexpected status %d", resp.StatusCode)
	}

	m.state.Store(int32(StateConnected))
	m.log.Info(ctx, "realtime channel connected", "subject", subject)

	reader := newEventReader(resp.Body)
	for {
		event, err := reader.next()
		if err != nil {
			m.state.Store(int32(StateDisconnected))
			if ctx.Err() == nil {
				m.log.Warn(ctx, "realtime channel dropped", "error", err)
			}
			return true, nil
		}
		m.dispatch(ctx, event)
	}
}

func (m *Manager) dispatch(ctx context.Context, event Event) {
	m.mu.Lock()
	handler := m.handlers[event.Name]
	notifier := m.notifier
	m.mu.Unlock()

	if handler != nil {
		handler(event)
	} else {
		m.log.Debug(ctx, "push event without handler", "event", event.Name)
	}

	// Desktop notification is fire-and-forget: separate goroutine, errors
	// ignored, never on the dispatch path.
	if notifier != nil {
		var push api.PushEvent
		if err := json.Unmarshal(event.Data, &push); err != nil || push.Message == "" {
			return
		}
		go notifier.Notify("New Job Application", push.Message)
	}
}
