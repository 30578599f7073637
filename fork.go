package fork

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Fork runs tasks concurrently on an Executor and collects their outcomes in submission order.
//
// A Fork is an immutable value: Submit and every With method return a new Fork and leave
// the receiver untouched, so forks can be shared and extended from many goroutines.
// Derived forks share the executor and the tasks already submitted, never their handle lists.
type Fork[T any, E error] struct {
	id       string
	ctx      context.Context
	executor Executor
	handles  []*handle[T]
	mapper   func(error) E
	deadline time.Duration
	logger   *slog.Logger
}

// New creates an empty Fork that submits tasks to executor.
// Failures are reported with their original error until WithFailureMapper is applied.
// The executor is borrowed: the Fork never stops it.
func New[T any](executor Executor) (Fork[T, error], error) {
	if isNil(executor) {
		return Fork[T, error]{}, fmt.Errorf("%w: executor cannot be nil", ErrInvalidArgument)
	}

	return Fork[T, error]{
		id:       uuid.NewString(),
		ctx:      context.Background(),
		executor: executor,
		mapper:   identity,
		logger:   slog.Default(),
	}, nil
}

func identity(err error) error {
	return err
}

// ID identifies the fork in logs. Forks derived from the same New call share it.
func (f Fork[T, E]) ID() string {
	return f.id
}

// Len returns the number of submitted tasks
func (f Fork[T, E]) Len() int {
	return len(f.handles)
}

// Deadline returns how long each wait is bounded to, or 0 when waits are unbounded
func (f Fork[T, E]) Deadline() time.Duration {
	return f.deadline
}

// Submit hands every task to the executor right away and returns a Fork whose tasks are
// the receiver's followed by the given ones, in order. It does not wait for any task to run.
//
// A task must be one of func(), func() error, func() T, func() (T, error), or the same
// shapes taking a context.Context; Submit panics otherwise. Tasks with no output succeed
// without a value. A task the executor rejects fails with the executor's error.
//
// On a Fork[error, E], func() error is still a task without output whose error is a failure;
// submit func() (error, error) to produce errors as values.
func (f Fork[T, E]) Submit(tasks ...any) Fork[T, E] {
	if f.executor == nil {
		panic(fmt.Errorf("%w: fork has no executor, create it with New", ErrInvalidArgument))
	}

	// Validate everything before submitting anything
	for _, task := range tasks {
		validateTask[T](task)
	}

	handles := make([]*handle[T], len(f.handles), len(f.handles)+len(tasks))
	copy(handles, f.handles)

	for _, task := range tasks {
		h, err := submitTask[T](f.ctx, f.executor, task)
		if err != nil {
			f.logger.Debug("task rejected by executor",
				slog.String("fork_id", f.id),
				slog.Int("index", len(handles)),
				slog.Any("error", err))
		}
		handles = append(handles, h)
	}

	f.logger.Debug("tasks submitted",
		slog.String("fork_id", f.id),
		slog.Int("submitted", len(tasks)),
		slog.Int("total", len(handles)))

	f.handles = handles
	return f
}

// WithDeadline returns a Fork whose waits give up after d, per task.
// A task whose wait gives up fails with ErrDeadlineExceeded but is not cancelled:
// it keeps its worker busy until it returns. A d of 0 or less removes the deadline.
func (f Fork[T, E]) WithDeadline(d time.Duration) Fork[T, E] {
	if d < 0 {
		d = 0
	}
	f.deadline = d
	return f
}

// WithContext returns a Fork that passes ctx to the context-aware tasks submitted from now on.
func (f Fork[T, E]) WithContext(ctx context.Context) Fork[T, E] {
	if ctx == nil {
		panic(fmt.Errorf("%w: context cannot be nil", ErrInvalidArgument))
	}
	f.ctx = ctx
	return f
}

// WithLogger returns a Fork that logs to logger. A nil logger selects slog.Default().
func (f Fork[T, E]) WithLogger(logger *slog.Logger) Fork[T, E] {
	if logger == nil {
		logger = slog.Default()
	}
	f.logger = logger
	return f
}

// WithFailureMapper returns a Fork whose failures carry fn applied to the original error.
// It also applies to tasks submitted before the call: failures are mapped when observed,
// so no task runs again.
func WithFailureMapper[T any, E, X error](f Fork[T, E], fn func(error) X) Fork[T, X] {
	if fn == nil {
		panic(fmt.Errorf("%w: failure mapper cannot be nil", ErrInvalidArgument))
	}

	return Fork[T, X]{
		id:       f.id,
		ctx:      f.ctx,
		executor: f.executor,
		handles:  f.handles,
		mapper:   fn,
		deadline: f.deadline,
		logger:   f.logger,
	}
}

// Stream returns the outcomes of the submitted tasks in submission order, paired with their index.
// Nothing is awaited until the sequence is iterated; each step then blocks until its task
// completes, the deadline elapses or ctx is done. A failed or timed out task never stops
// the iteration, and ctx being done only fails the waits, not the tasks.
func (f Fork[T, E]) Stream(ctx context.Context) iter.Seq2[int, Result[T, E]] {
	handles := f.handles

	return func(yield func(int, Result[T, E]) bool) {
		for i, h := range handles {
			if !yield(i, f.await(ctx, i, h)) {
				return
			}
		}
	}
}

// Await waits for every submitted task and returns their outcomes in submission order.
func (f Fork[T, E]) Await(ctx context.Context) []Result[T, E] {
	results := make([]Result[T, E], 0, len(f.handles))

	for _, result := range f.Stream(ctx) {
		results = append(results, result)
	}

	return results
}

func (f Fork[T, E]) await(ctx context.Context, index int, h *handle[T]) Result[T, E] {
	out, err := h.await(ctx, index, f.deadline)
	if err != nil {
		f.logger.Debug("task failed",
			slog.String("fork_id", f.id),
			slog.Int("index", index),
			slog.Any("error", err))

		return failure[T](err, f.mapper)
	}

	return Result[T, E]{
		value:   out.value,
		present: out.present,
		mapper:  f.mapper,
	}
}
