package fanout

import "errors"

// Outcome is the result of one task: either a success value or the error the
// task failed with, never both.
type Outcome[T any] struct {
	index int
	value T
	err   error
}

// Success returns the Outcome of a task that returned v.
func Success[T any](index int, v T) Outcome[T] {
	return Outcome[T]{index: index, value: v}
}

// Failure returns the Outcome of a task that failed with err.
func Failure[T any](index int, err error) Outcome[T] {
	if err == nil {
		err = ErrNilFailure
	}
	return Outcome[T]{index: index, err: err}
}

// Index is the submission index of the task.
func (o Outcome[T]) Index() int { return o.index }

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool { return o.err == nil }

// Value is the task's return value; zero for a failure.
func (o Outcome[T]) Value() T { return o.value }

// Err is the task's failure; nil for a success.
func (o Outcome[T]) Err() error { return o.err }

// Get returns the value and the error in the usual Go shape.
func (o Outcome[T]) Get() (T, error) { return o.value, o.err }

// Results holds one Outcome per submitted task, in submission order.
type Results[T any] []Outcome[T]

// Values returns every task's value in submission order. Failed tasks
// contribute the zero value.
func (r Results[T]) Values() []T {
	out := make([]T, len(r))
	for i, o := range r {
		out[i] = o.value
	}
	return out
}

// Failed counts the failed outcomes.
func (r Results[T]) Failed() int {
	n := 0
	for _, o := range r {
		if o.err != nil {
			n++
		}
	}
	return n
}

// Err joins the failures as *TaskError values, in submission order.
// It returns nil when every task succeeded.
func (r Results[T]) Err() error {
	var errs []error
	for _, o := range r {
		if o.err != nil {
			errs = append(errs, &TaskError{Index: o.index, Err: o.err})
		}
	}
	return errors.Join(errs...)
}
