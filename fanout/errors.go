package fanout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcurrency is returned by Run and Gather when WithConcurrency
	// was given a non-positive bound. No task is started.
	ErrInvalidConcurrency = errors.New("fanout: concurrency must be a positive integer")

	// ErrNilTask is returned by Run and Gather when a submitted task has no
	// function. No task is started.
	ErrNilTask = errors.New("fanout: nil task")

	// ErrNilFailure stands in for the error of a Failure built from nil.
	ErrNilFailure = errors.New("fanout: failure without error")

	// ErrArgMissing is returned by Arg and KwArg for an absent argument.
	ErrArgMissing = errors.New("fanout: missing argument")

	// ErrArgType is returned by Arg and KwArg when the argument has another type.
	ErrArgType = errors.New("fanout: argument type mismatch")
)

// TaskError ties a task failure to the task's submission index.
type TaskError struct {
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d failed: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// IsTaskError reports whether err wraps a *TaskError.
func IsTaskError(err error) bool {
	var taskErr *TaskError
	return errors.As(err, &taskErr)
}

// TaskIndex returns the submission index carried by a wrapped *TaskError.
func TaskIndex(err error) (int, bool) {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Index, true
	}
	return 0, false
}

// PanicError is the failure recorded for a task that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("fanout: panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
