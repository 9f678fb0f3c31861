package fanout

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestGateBound(t *testing.T) {
	t.Parallel()
	const N = 4
	const M = 40
	g := NewGate(N)
	var b Barrier
	var cur, maxSeen atomic.Int64
	for i := 0; i < M; i++ {
		if err := g.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire: %v", err)
		}
		b.Add()
		go func() {
			defer b.Done()
			defer g.Release()
			c := cur.Add(1)
			for {
				m := maxSeen.Load()
				if c <= m || maxSeen.CompareAndSwap(m, c) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			cur.Add(-1)
		}()
	}
	b.Wait()
	if observed := int(maxSeen.Load()); observed > N {
		t.Fatalf("observed concurrency %d exceeds limit %d", observed, N)
	}
	if g.Active() != 0 {
		t.Fatalf("expected no admitted tasks after join, got %d", g.Active())
	}
}

func TestGateUnboundedNeverBlocks(t *testing.T) {
	t.Parallel()
	g := NewGate(Unbounded)
	if g.Limit() != Unbounded {
		t.Fatalf("expected unbounded limit, got %d", g.Limit())
	}
	for i := 0; i < 1000; i++ {
		if err := g.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if got := g.Active(); got != 1000 {
		t.Fatalf("expected 1000 admitted, got %d", got)
	}
	for i := 0; i < 1000; i++ {
		g.Release()
	}
	if got := g.Active(); got != 0 {
		t.Fatalf("expected 0 admitted, got %d", got)
	}
}

func TestGateNegativeLimitIsUnbounded(t *testing.T) {
	t.Parallel()
	if got := NewGate(-3).Limit(); got != Unbounded {
		t.Fatalf("expected unbounded, got %d", got)
	}
}

func TestGateReleaseWakesWaiter(t *testing.T) {
	t.Parallel()
	g := NewGate(1)
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	admitted := make(chan struct{})
	go func() {
		_ = g.Acquire(context.Background())
		close(admitted)
	}()
	select {
	case <-admitted:
		t.Fatal("second acquire should block while the gate is full")
	case <-time.After(20 * time.Millisecond):
	}
	g.Release()
	select {
	case <-admitted:
	case <-time.After(time.Second):
		t.Fatal("waiter was not admitted after release")
	}
	g.Release()
}

func TestGateAcquireRespectsCancel(t *testing.T) {
	t.Parallel()
	g := NewGate(1)
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer g.Release()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := g.Acquire(ctx); err == nil {
		t.Fatal("expected acquire on a full gate to fail once ctx is done")
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("expected quick abort on cancel, got %v", elapsed)
	}
	if g.Active() != 1 {
		t.Fatalf("failed acquire must not count as admitted, got %d", g.Active())
	}
}
