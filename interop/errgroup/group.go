// Package errgroup provides an errgroup-shaped front end over the fanout
// primitives, for code migrating from golang.org/x/sync/errgroup.
//
// Unlike errgroup, a failing function never cancels the others, and Wait
// reports the error of the earliest submitted failing function rather than
// the first one to fail in time.
package errgroup

import (
	"context"

	"github.com/NetPo4ki/go-fanout/fanout"
)

// Group runs functions on their own goroutines. The zero value is ready to
// use and has no concurrency limit.
type Group struct {
	gate    *fanout.Gate
	barrier fanout.Barrier
	store   *fanout.Store[struct{}]
	next    int
}

// SetLimit bounds the number of functions running at once. A negative n
// removes the bound. It must not be called while functions are running.
func (g *Group) SetLimit(n int) {
	if g.barrier.Outstanding() != 0 {
		panic("errgroup: modify limit while functions are running")
	}
	g.gate = fanout.NewGate(n)
}

// Go runs f on a new goroutine, blocking while the limit is reached. Go must
// be called from a single goroutine.
func (g *Group) Go(f func() error) {
	if f == nil {
		return
	}
	if g.gate == nil {
		g.gate = fanout.NewGate(fanout.Unbounded)
	}
	if g.store == nil {
		g.store = fanout.NewStore[struct{}](0)
	}
	idx := g.next
	g.next++

	_ = g.gate.Acquire(context.Background())
	g.barrier.Add()
	fanout.GoLauncher{}.Launch(func() {
		defer g.barrier.Done()
		defer g.gate.Release()
		if err := f(); err != nil {
			g.store.Put(fanout.Failure[struct{}](idx, err))
		}
	})
}

// Wait blocks until every function returned and reports the error of the
// lowest-index failing function, or nil.
func (g *Group) Wait() error {
	g.barrier.Wait()
	if g.store == nil {
		return nil
	}
	if failed := g.store.Sorted(); len(failed) > 0 {
		return failed[0].Err()
	}
	return nil
}
