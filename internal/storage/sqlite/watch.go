package sqlite

import (
	"context"
	"sync"

	"github.com/mmynk/billwise/internal/storage"
)

// subscription is one live query's interest in a set of tables.
type subscription struct {
	tables map[string]struct{}
	// ch holds at most one pending invalidation; extra ones coalesce.
	ch chan struct{}
}

// tracker fans table invalidations out to live queries.
type tracker struct {
	mu   sync.Mutex
	subs map[*subscription]struct{}
}

func newTracker() *tracker {
	return &tracker{subs: make(map[*subscription]struct{})}
}

func (t *tracker) subscribe(tables ...string) *subscription {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	t.mu.Lock()
	t.subs[sub] = struct{}{}
	t.mu.Unlock()
	return sub
}

func (t *tracker) unsubscribe(sub *subscription) {
	t.mu.Lock()
	delete(t.subs, sub)
	t.mu.Unlock()
}

// notify wakes every subscription that reads one of tables.
func (t *tracker) notify(tables ...string) {
	if len(tables) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for sub := range t.subs {
		for _, table := range tables {
			if _, ok := sub.tables[table]; ok {
				select {
				case sub.ch <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

// watch runs load now and again after every change to tables, emitting each
// result. It stops when ctx ends or after emitting a read fault.
func watch[T any](ctx context.Context, s *SQLiteStore, load func(ctx context.Context) (T, error), tables ...string) <-chan storage.Snapshot[T] {
	out := make(chan storage.Snapshot[T])
	// Subscribe before the first read so no change slips between the two.
	sub := s.tracker.subscribe(tables...)

	go func() {
		defer close(out)
		defer s.tracker.unsubscribe(sub)

		for {
			value, err := load(ctx)
			if ctx.Err() != nil {
				return
			}

			select {
			case out <- storage.Snapshot[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}

			select {
			case <-sub.ch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
