package fanout

import (
	"sync"
	"sync/atomic"
)

// Barrier counts outstanding tasks and lets a caller block until none remain.
type Barrier struct {
	wg          sync.WaitGroup
	outstanding atomic.Int64
}

// Add registers one more outstanding task.
func (b *Barrier) Add() {
	b.outstanding.Add(1)
	b.wg.Add(1)
}

// Done marks one outstanding task as finished.
func (b *Barrier) Done() {
	b.outstanding.Add(-1)
	b.wg.Done()
}

// Wait blocks until every registered task called Done.
func (b *Barrier) Wait() { b.wg.Wait() }

// Outstanding reports how many tasks have not finished yet.
func (b *Barrier) Outstanding() int { return int(b.outstanding.Load()) }
