// Package notify merges the two notification sources — the on-demand
// catch-up fetch and the live push channel — into one ordered feed with an
// unread counter.
//
// The two sources race: a push can land mid-fetch. Reconciliation is by
// identifier, with the rule that a push carrying a timestamp older than the
// latest catch-up snapshot is dropped only when its id is already present;
// otherwise the push is always kept. No entry is lost and none is
// double-counted.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"careerhub/internal/api"
	"careerhub/internal/logging"
)

// API is the slice of the REST client the aggregator needs.
type API interface {
	Notifications(ctx context.Context) ([]api.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// Aggregator owns the notification feed. All mutation goes through its
// methods; Snapshot returns copies.
type Aggregator struct {
	api API
	log logging.Logger

	mu     sync.Mutex
	items  []api.Notification
	unread int
	// cutoff is the creation time of the newest entry in the last catch-up
	// snapshot; see the package comment for how it breaks fetch/push ties.
	cutoff time.Time
}

func New(a API, log logging.Logger) *Aggregator {
	return &Aggregator{api: a, log: log}
}

// CatchUp fetches the authenticated user's full notification history and
// installs it as the new feed. A push can land while the fetch is in
// flight; entries merged by OnPush since the fetch began are retained in
// front of the snapshot (deduplicated by identifier), so no entry is lost.
func (ag *Aggregator) CatchUp(ctx context.Context) error {
	ag.mu.Lock()
	before := make(map[string]struct{}, len(ag.items))
	for i := range ag.items {
		before[ag.items[i].ID] = struct{}{}
	}
	ag.mu.Unlock()

	fetched, err := ag.api.Notifications(ctx)
	if err != nil {
		return err
	}

	fetchedIDs := make(map[string]struct{}, len(fetched))
	var newest time.Time
	for i := range fetched {
		fetchedIDs[fetched[i].ID] = struct{}{}
		if fetched[i].CreatedAt.After(newest) {
			newest = fetched[i].CreatedAt
		}
	}

	ag.mu.Lock()
	defer ag.mu.Unlock()

	// Pushes that raced the fetch: present now, absent when it began, and
	// not part of the snapshot. They keep their newest-first positions.
	var pushed []api.Notification
	for i := range ag.items {
		id := ag.items[i].ID
		if _, ok := before[id]; ok {
			continue
		}
		if _, ok := fetchedIDs[id]; ok {
			continue
		}
		pushed = append(pushed, ag.items[i])
	}

	merged := make([]api.Notification, 0, len(pushed)+len(fetched))
	merged = append(merged, pushed...)
	merged = append(merged, fetched...)

	unread := 0
	for i := range merged {
		if !merged[i].Read {
			unread++
		}
	}

	ag.items = merged
	ag.unread = unread
	ag.cutoff = newest

	ag.log.Debug(ctx, "notification catch-up complete",
		"count", len(merged), "unread", unread, "raced", len(pushed))
	return nil
}

// OnPush merges one live push event into the feed: prepended newest-first,
// unread incremented, deduplicated by identifier. When the payload omits
// the notification record, one is synthesized from the message with a
// generated id.
func (ag *Aggregator) OnPush(event api.PushEvent) {
	n := event.Notification
	if n == nil {
		n = &api.Notification{Message: event.Message, CreatedAt: time.Now()}
	}
	entry := *n
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	ag.mu.Lock()
	defer ag.mu.Unlock()

	for i := range ag.items {
		if ag.items[i].ID == entry.ID {
			// Already merged, either by an earlier push or by a catch-up
			// snapshot that raced ahead of this event.
			return
		}
	}
	if entry.CreatedAt.Before(ag.cutoff) {
		// Older than the last snapshot but not present in it: keep it
		// anyway, the fetch simply missed it.
		ag.log.Debug(context.Background(), "late push merged", "id", entry.ID)
	}

	ag.items = append([]api.Notification{entry}, ag.items...)
	if !entry.Read {
		ag.unread++
	}
}

// MarkAllRead issues a per-entry mark-read call for every unread entry, in
// parallel, and waits for all of them to settle. Entries whose call failed
// are left unread. Returns the number actually applied and the number that
// failed.
func (ag *Aggregator) MarkAllRead(ctx context.Context) (applied, failed int) {
	ag.mu.Lock()
	var ids []string
	for i := range ag.items {
		if !ag.items[i].Read {
			ids = append(ids, ag.items[i].ID)
		}
	}
	ag.mu.Unlock()

	if len(ids) == 0 {
		return 0, 0
	}

	var wg sync.WaitGroup
	results := make([]bool, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := ag.api.MarkNotificationRead(ctx, id); err != nil {
				ag.log.Warn(ctx, "mark-read failed", "id", id, "error", err)
				return
			}
			results[i] = true
		}(i, id)
	}
	wg.Wait()

	confirmed := make(map[string]bool, len(ids))
	for i, id := range ids {
		if results[i] {
			confirmed[id] = true
			applied++
		} else {
			failed++
		}
	}

	ag.mu.Lock()
	for i := range ag.items {
		if confirmed[ag.items[i].ID] {
			ag.items[i].Read = true
		}
	}
	unread := 0
	for i := range ag.items {
		if !ag.items[i].Read {
			unread++
		}
	}
	ag.unread = unread
	ag.mu.Unlock()

	return applied, failed
}

// Snapshot returns a copy of the feed (newest first) and the unread count.
func (ag *Aggregator) Snapshot() ([]api.Notification, int) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	items := make([]api.Notification, len(ag.items))
	copy(items, ag.items)
	return items, ag.unread
}

// Unread returns just the unread count.
func (ag *Aggregator) Unread() int {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.unread
}

// Reset drops all local state. Called from the session teardown list on
// logout so a following login starts from a clean feed.
func (ag *Aggregator) Reset() {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.items = nil
	ag.unread = 0
	ag.cutoff = time.Time{}
}
