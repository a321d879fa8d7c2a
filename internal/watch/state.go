package watch

import (
	"context"
	"sync"
)

// State holds a current value and republishes every replacement to all
// observers. Observation is conflated: a slow observer skips intermediate
// values and always receives the latest one, so a freshly read value is never
// older than the last committed Set.
type State[T any] struct {
	mu   sync.Mutex
	v    T
	subs map[int]chan T
	next int
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{v: initial, subs: make(map[int]chan T)}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

// Set replaces the current value and signals all observers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	for _, ch := range s.subs {
		sendLatest(ch, v)
	}
}

// Update applies fn to the current value under the lock, stores the result,
// and signals all observers. Writers calling Update serialize, so no update
// is lost between concurrent mutators.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = fn(s.v)
	for _, ch := range s.subs {
		sendLatest(ch, s.v)
	}
}

// Observe returns a channel that immediately carries the current value and
// then every subsequent replacement, conflated. The channel is closed when
// ctx ends.
func (s *State[T]) Observe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	ch <- s.v
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}

// sendLatest delivers v on a buffer-1 channel, dropping a stale undelivered
// value first if needed. Called with the owning State locked, so sends for a
// given channel never race each other.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// SendLatest is the exported form used by repository observe loops, which own
// their output channel exclusively.
func SendLatest[T any](ch chan T, v T) {
	sendLatest(ch, v)
}
