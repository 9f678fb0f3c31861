package fanout

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Unbounded is the gate limit meaning "no concurrency ceiling".
const Unbounded = 0

// Gate bounds how many tasks are admitted at once. A bounded gate blocks
// Acquire until a slot is free; admission is FIFO. An unbounded gate never
// blocks. The limit is fixed for the gate's lifetime.
type Gate struct {
	sem    *semaphore.Weighted
	limit  int
	active atomic.Int64
}

// NewGate returns a gate admitting at most limit tasks. A limit <= 0 yields
// an unbounded gate.
func NewGate(limit int) *Gate {
	if limit <= 0 {
		return &Gate{limit: Unbounded}
	}
	return &Gate{sem: semaphore.NewWeighted(int64(limit)), limit: limit}
}

// Acquire admits one task, blocking while the gate is full. It only fails
// when ctx is done before a slot frees up.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.sem != nil {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	g.active.Add(1)
	return nil
}

// Release frees the slot of one admitted task and wakes a blocked Acquire.
func (g *Gate) Release() {
	g.active.Add(-1)
	if g.sem != nil {
		g.sem.Release(1)
	}
}

// Active reports how many tasks are currently admitted.
func (g *Gate) Active() int { return int(g.active.Load()) }

// Limit reports the admission bound, or Unbounded.
func (g *Gate) Limit() int { return g.limit }
