package fanout

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Store maps submission indexes to outcomes. It is safe for concurrent use;
// each writer is expected to own a distinct index.
type Store[T any] struct {
	mu       sync.Mutex
	outcomes map[int]Outcome[T]
}

// NewStore returns an empty store sized for n outcomes.
func NewStore[T any](n int) *Store[T] {
	return &Store[T]{outcomes: make(map[int]Outcome[T], n)}
}

// Put records o under its index. Recording an index twice panics.
func (s *Store[T]) Put(o Outcome[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.outcomes[o.index]; dup {
		panic(fmt.Sprintf("fanout: duplicate outcome for task %d", o.index))
	}
	s.outcomes[o.index] = o
}

// Len reports how many outcomes are recorded.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outcomes)
}

// Sorted returns the recorded outcomes by ascending index.
func (s *Store[T]) Sorted() Results[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Results[T], 0, len(s.outcomes))
	for _, idx := range slices.Sorted(maps.Keys(s.outcomes)) {
		out = append(out, s.outcomes[idx])
	}
	return out
}
