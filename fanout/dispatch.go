package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run executes tasks concurrently, admitting at most the configured number
// at a time, and returns once every task has finished.
//
// Task failures never reach the caller. Under Suppress (the default) they are
// discarded; under Propagate each is handed to the fault handler as it
// happens. Use Gather to observe failures.
//
// The only errors are configuration errors (ErrInvalidConcurrency,
// ErrNilTask), returned before any task starts.
func Run[T any](ctx context.Context, tasks []Task[T], opts ...Option) error {
	d, err := newDispatcher(ctx, tasks, opts)
	if err != nil {
		return err
	}
	d.dispatch(tasks)
	return nil
}

// Gather executes tasks like Run and returns one Outcome per task in
// submission order, regardless of completion order. A task's error or panic
// becomes a Failure outcome; it never aborts the other tasks.
//
// The only errors are configuration errors, returned before any task starts.
func Gather[T any](ctx context.Context, tasks []Task[T], opts ...Option) (Results[T], error) {
	d, err := newDispatcher(ctx, tasks, opts)
	if err != nil {
		return nil, err
	}
	d.store = NewStore[T](len(tasks))
	d.dispatch(tasks)
	return d.store.Sorted(), nil
}

// dispatcher holds the state of one Run or Gather call.
type dispatcher[T any] struct {
	ctx     context.Context
	opts    Options
	obs     Observer
	gate    *Gate
	barrier Barrier
	// store is nil for Run.
	store *Store[T]
}

func newDispatcher[T any](ctx context.Context, tasks []Task[T], optFns []Option) (*dispatcher[T], error) {
	o, err := resolveOptions(optFns)
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if t.Fn == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilTask, i)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = withBatchID(context.WithoutCancel(ctx), uuid.New())
	return &dispatcher[T]{
		ctx:  ctx,
		opts: o,
		obs:  o.Observer,
		gate: NewGate(o.Concurrency),
	}, nil
}

func (d *dispatcher[T]) dispatch(tasks []Task[T]) {
	if d.obs != nil {
		d.obs.BatchStarted(d.ctx, len(tasks))
	}
	for i, t := range tasks {
		var start time.Time
		if d.obs != nil {
			start = time.Now()
		}
		// d.ctx is never canceled, so Acquire only returns once admitted.
		_ = d.gate.Acquire(d.ctx)
		if d.obs != nil {
			d.obs.TaskAdmitted(d.ctx, i, time.Since(start))
		}
		d.barrier.Add()
		d.opts.Launcher.Launch(func() { d.work(i, t) })
	}

	var start time.Time
	if d.obs != nil {
		start = time.Now()
	}
	d.barrier.Wait()
	if d.obs != nil {
		d.obs.BatchJoined(d.ctx, time.Since(start))
	}
}

func (d *dispatcher[T]) work(idx int, t Task[T]) {
	defer d.barrier.Done()
	defer d.gate.Release()

	var start time.Time
	if d.obs != nil {
		start = time.Now()
		d.obs.TaskStarted(d.ctx, idx)
	}
	v, panicked, err := call(d.ctx, t)
	if d.obs != nil {
		d.obs.TaskFinished(d.ctx, idx, time.Since(start), err, panicked)
	}

	switch {
	case d.store != nil && err != nil:
		d.store.Put(Failure[T](idx, err))
	case d.store != nil:
		d.store.Put(Success(idx, v))
	case err != nil && d.opts.Policy == Propagate:
		d.opts.fault(Fault{Index: idx, Err: err, Panicked: panicked})
	}
}
