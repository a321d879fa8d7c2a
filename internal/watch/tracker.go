// Package watch implements the change-notification primitives behind the
// repositories' continuous read contracts: a Tracker fanning out table
// invalidations, a State holding an observable value, and CombineLatest for
// merging two streams into consistent pairs.
package watch

import (
	"context"
	"sync"
)

// Tracker fans out table-change signals to any number of subscribers.
// Signals are conflated: a subscriber that has not drained its channel yet
// sees at most one pending signal, which is enough to trigger a re-query.
type Tracker struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[string]map[int]chan struct{})}
}

// Notify signals every subscriber of each named table. It never blocks.
func (t *Tracker) Notify(tables ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, table := range tables {
		for _, ch := range t.subs[table] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribe returns a channel that receives a signal after every Notify for
// the given table. The channel is closed when ctx ends.
func (t *Tracker) Subscribe(ctx context.Context, table string) <-chan struct{} {
	ch := make(chan struct{}, 1)

	t.mu.Lock()
	if t.subs[table] == nil {
		t.subs[table] = make(map[int]chan struct{})
	}
	id := t.next
	t.next++
	t.subs[table][id] = ch
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		delete(t.subs[table], id)
		t.mu.Unlock()
		close(ch)
	}()

	return ch
}
