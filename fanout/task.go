package fanout

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// Func is the body of a task. It receives the positional and keyword
// arguments it was submitted with.
type Func[T any] func(ctx context.Context, args Args) (T, error)

// Task is one unit of work: a function plus its arguments. Its identity within
// a batch is its index in the submitted slice.
type Task[T any] struct {
	Fn   Func[T]
	Args Args
}

// NewTask builds a task from fn and its arguments. Nil arguments are treated
// as empty.
func NewTask[T any](fn Func[T], positional []any, keyword map[string]any) Task[T] {
	return Task[T]{Fn: fn, Args: newArgs(positional, keyword)}
}

// Bind wraps a closure that takes no arguments.
func Bind[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	if fn == nil {
		return Task[T]{}
	}
	return Task[T]{Fn: func(ctx context.Context, _ Args) (T, error) { return fn(ctx) }}
}

// Args holds a task's positional and keyword arguments. The zero value has no
// arguments. Args is never mutated after construction.
type Args struct {
	pos []any
	kw  map[string]any
}

// Pos returns Args with the given positional arguments.
func Pos(v ...any) Args {
	return newArgs(v, nil)
}

func newArgs(positional []any, keyword map[string]any) Args {
	var a Args
	if len(positional) > 0 {
		a.pos = slices.Clone(positional)
	}
	if len(keyword) > 0 {
		a.kw = maps.Clone(keyword)
	}
	return a
}

// With returns a copy of a with the keyword argument name set to v.
func (a Args) With(name string, v any) Args {
	kw := make(map[string]any, len(a.kw)+1)
	maps.Copy(kw, a.kw)
	kw[name] = v
	return Args{pos: a.pos, kw: kw}
}

// Len reports the number of positional arguments.
func (a Args) Len() int { return len(a.pos) }

// At returns the i-th positional argument, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.pos) {
		return nil
	}
	return a.pos[i]
}

// Kw returns the keyword argument name.
func (a Args) Kw(name string) (any, bool) {
	v, ok := a.kw[name]
	return v, ok
}

// Keys returns the keyword argument names in sorted order.
func (a Args) Keys() []string {
	return slices.Sorted(maps.Keys(a.kw))
}

// Arg returns the i-th positional argument as a V.
func Arg[V any](a Args, i int) (V, error) {
	var zero V
	if i < 0 || i >= len(a.pos) {
		return zero, fmt.Errorf("%w: position %d of %d", ErrArgMissing, i, len(a.pos))
	}
	v, ok := a.pos[i].(V)
	if !ok {
		return zero, fmt.Errorf("%w: position %d is %T, want %T", ErrArgType, i, a.pos[i], zero)
	}
	return v, nil
}

// KwArg returns the keyword argument name as a V.
func KwArg[V any](a Args, name string) (V, error) {
	var zero V
	raw, ok := a.kw[name]
	if !ok {
		return zero, fmt.Errorf("%w: keyword %q", ErrArgMissing, name)
	}
	v, ok := raw.(V)
	if !ok {
		return zero, fmt.Errorf("%w: keyword %q is %T, want %T", ErrArgType, name, raw, zero)
	}
	return v, nil
}
