package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/rcreative/giftmon/pkg/domain"
)

//go:generate moq -out mocks/feed_client.go -pkg mocks -skip-ensure -fmt goimports . FeedClient
//go:generate moq -out mocks/seen_store.go -pkg mocks -skip-ensure -fmt goimports . SeenStore
//go:generate moq -out mocks/handler.go -pkg mocks -skip-ensure -fmt goimports . Handler

// FeedClient pulls pages of gift events from the remote feed
type FeedClient interface {
	ListPage(ctx context.Context, pageToken string) (events []domain.GiftEvent, nextPage string, err error)
}

// SeenStore keeps identifiers of events already delivered
type SeenStore interface {
	Contains(ctx context.Context, id string) (bool, error)
	Record(ctx context.Context, ids []string) error
}

// Handler receives each newly discovered gift event
type Handler interface {
	Handle(ctx context.Context, event domain.GiftEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface
type HandlerFunc func(ctx context.Context, event domain.GiftEvent) error

// Handle calls f(ctx, event)
func (f HandlerFunc) Handle(ctx context.Context, event domain.GiftEvent) error {
	return f(ctx, event)
}

// Stats is a snapshot of monitor activity
type Stats struct {
	Cycles    int64     `json:"cycles"`
	Delivered int64     `json:"delivered"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
}

// Monitor drains new gift events from the feed and delivers each one to the
// handler exactly once, persisting delivered identifiers so restarts do not
// re-deliver. The seen-set is mutated only through Fetch.
type Monitor struct {
	client  FeedClient
	seen    SeenStore
	handler Handler

	mu    sync.Mutex
	stats Stats
}

// New wires the monitor dependencies, no background activity is started
func New(client FeedClient, seen SeenStore, h Handler) *Monitor {
	return &Monitor{client: client, seen: seen, handler: h}
}

// Fetch runs one full cycle synchronously: walks pages from the start of the
// feed, delivers every unseen event in feed order and records delivered
// identifiers page by page. The walk stops after the first page that contains
// an already-seen event, on an empty page, or when the continuation token runs
// out. Returns once handler calls completed and identifiers persisted.
func (m *Monitor) Fetch(ctx context.Context) error {
	start := time.Now()
	delivered, err := m.drain(ctx)

	m.mu.Lock()
	m.stats.Cycles++
	m.stats.Delivered += int64(delivered)
	m.stats.LastRun = start
	m.stats.LastError = ""
	if err != nil {
		m.stats.LastError = err.Error()
	}
	m.mu.Unlock()

	return err
}

// Stats returns a snapshot of monitor counters
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func (m *Monitor) drain(ctx context.Context) (delivered int, err error) {
	token := ""
	for page := 1; ; page++ {
		events, next, err := m.client.ListPage(ctx, token)
		if err != nil {
			return delivered, fmt.Errorf("list page %d: %w", page, err)
		}
		if len(events) == 0 { // feed exhausted
			break
		}

		// a seen event marks the walk finished, but the rest of the page may
		// still hold unseen events, so the whole page is always scanned
		finished := false
		batch := make([]string, 0, len(events))
		for _, ev := range events {
			seen, err := m.seen.Contains(ctx, ev.ID)
			if err != nil {
				return delivered, fmt.Errorf("check event %s: %w", ev.ID, err)
			}
			if seen {
				finished = true
				continue
			}

			if err := m.handler.Handle(ctx, ev); err != nil {
				// not recorded, the event stays re-deliverable on the next cycle
				lgr.Printf("[WARN] handler failed for event %s: %v", ev.ID, err)
				continue
			}
			batch = append(batch, ev.ID)
			delivered++
		}

		// commit per page so a failure on a later page keeps this page's progress
		if len(batch) > 0 {
			if err := m.seen.Record(ctx, batch); err != nil {
				return delivered, fmt.Errorf("record %d events: %w", len(batch), err)
			}
		}

		if finished || next == "" {
			break
		}
		token = next
	}

	if delivered > 0 {
		lgr.Printf("[INFO] delivered %d new gift events", delivered)
	}
	return delivered, nil
}
