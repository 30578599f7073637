package fork

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a required argument is missing or invalid
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState is returned when reading the value of a failed result
	ErrIllegalState = errors.New("illegal state")

	// ErrDeadlineExceeded is the failure of a task whose wait exceeded the fork's deadline.
	// The task itself is not cancelled and keeps running on its worker.
	ErrDeadlineExceeded = errors.New("deadline exceeded while waiting for task")

	// ErrInterrupted is the failure of a task whose wait was interrupted by the caller's context
	ErrInterrupted = errors.New("interrupted while waiting for task")

	// ErrPanic is the failure of a task that panicked
	ErrPanic = errors.New("task panicked")
)

// TaskError identifies the submitted task whose wait failed.
// It wraps ErrDeadlineExceeded or ErrInterrupted.
type TaskError struct {
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task #%d: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// IndexOf returns the index of the task carried by the first TaskError in err's chain
func IndexOf(err error) (int, bool) {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Index, true
	}
	return -1, false
}
