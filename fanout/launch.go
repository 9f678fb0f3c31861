package fanout

import (
	"context"
	"runtime/debug"
)

// Launcher starts fn on its own thread of execution.
type Launcher interface {
	Launch(fn func())
}

// GoLauncher starts a goroutine per call and returns at once.
type GoLauncher struct{}

func (GoLauncher) Launch(fn func()) { go fn() }

// InlineLauncher runs fn on the caller's goroutine. Useful when debugging:
// tasks keep their outcomes and ordering but never overlap.
type InlineLauncher struct{}

func (InlineLauncher) Launch(fn func()) { fn() }

// Launch starts t in the background and returns immediately. There is no
// result channel; an error or panic from t is reported as a Fault with index
// -1 to the fault handler (logged by default). WithConcurrency and WithPolicy
// have no effect here.
func Launch[T any](ctx context.Context, t Task[T], opts ...Option) {
	o, _ := resolveOptions(opts)
	if ctx == nil {
		ctx = context.Background()
	}
	o.Launcher.Launch(func() {
		if t.Fn == nil {
			o.fault(Fault{Index: -1, Err: ErrNilTask})
			return
		}
		if _, panicked, err := call(ctx, t); err != nil {
			o.fault(Fault{Index: -1, Err: err, Panicked: panicked})
		}
	})
}

// Detach wraps fn so that calling the result launches fn in the background
// instead of running it synchronously.
func Detach[T any](fn Func[T], opts ...Option) func(ctx context.Context, args Args) {
	return func(ctx context.Context, args Args) {
		Launch(ctx, Task[T]{Fn: fn, Args: args}, opts...)
	}
}

// call runs the task body, turning a panic into a *PanicError.
func call[T any](ctx context.Context, t Task[T]) (v T, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, panicked, err = zero, true, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	v, err = t.Fn(ctx, t.Args)
	return v, false, err
}
