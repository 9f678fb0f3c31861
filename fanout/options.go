package fanout

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Policy selects what Run does with a failed task.
type Policy int

const (
	// Suppress discards task failures.
	Suppress Policy = iota
	// Propagate reports each task failure to the fault handler. The failure
	// still never reaches Run's caller through its return value.
	Propagate
)

func (p Policy) String() string {
	switch p {
	case Suppress:
		return "suppress"
	case Propagate:
		return "propagate"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Fault is a task failure reported out of band. Index is -1 for tasks started
// with Launch or Detach.
type Fault struct {
	Index    int
	Err      error
	Panicked bool
}

type Option func(*Options)

type Options struct {
	// Concurrency is the admission bound; Unbounded when not set.
	Concurrency int
	Policy      Policy
	Observer    Observer
	Launcher    Launcher
	Logger      logr.Logger
	// OnFault receives failures under Propagate and from Launch. When nil,
	// faults are logged through Logger.
	OnFault func(Fault)

	concurrencySet bool
}

func defaultOptions() Options {
	return Options{
		Concurrency: Unbounded,
		Policy:      Suppress,
		Launcher:    GoLauncher{},
		Logger:      stderrLogger(),
	}
}

// WithConcurrency bounds how many tasks run at once. n must be positive.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
		o.concurrencySet = true
	}
}

func WithPolicy(p Policy) Option { return func(o *Options) { o.Policy = p } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func WithLauncher(l Launcher) Option { return func(o *Options) { o.Launcher = l } }

func WithLogger(l logr.Logger) Option { return func(o *Options) { o.Logger = l } }

func WithFaultHandler(fn func(Fault)) Option { return func(o *Options) { o.OnFault = fn } }

func resolveOptions(optFns []Option) (Options, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Launcher == nil {
		o.Launcher = GoLauncher{}
	}
	if o.concurrencySet && o.Concurrency <= 0 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, o.Concurrency)
	}
	return o, nil
}

func (o Options) fault(f Fault) {
	if o.OnFault != nil {
		o.OnFault(f)
		return
	}
	o.Logger.Error(f.Err, "task failed", "index", f.Index, "panicked", f.Panicked)
}

func stderrLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{}).WithName("fanout")
}
