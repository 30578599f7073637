package fork

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nextbreakpoint/fork/internal/future"
	"github.com/nextbreakpoint/fork/pool"
)

// contextExecutor is implemented by executors that stop accepting and running tasks once
// their context is done, such as *pool.Pool
type contextExecutor interface {
	Context() context.Context
}

type outcome[T any] struct {
	value   T
	present bool
}

// handle is the caller's side of one submitted task
type handle[T any] struct {
	future  *future.Future[outcome[T]]
	started atomic.Bool
	stopped context.Context
}

// submitTask hands task to executor and returns its handle. A rejected submission
// yields a handle that is already resolved with the rejection error.
func submitTask[T any](ctx context.Context, executor Executor, task any) (*handle[T], error) {
	f, resolve := future.New[outcome[T]]()

	h := &handle[T]{future: f}
	if e, ok := executor.(contextExecutor); ok && e.Context().Done() != nil {
		h.stopped = e.Context()
	}

	err := executor.Go(func() {
		h.started.Store(true)
		output, present, err := invokeTask[T](ctx, task)
		resolve(outcome[T]{value: output, present: present}, err)
	})
	if err != nil {
		resolve(outcome[T]{}, err)
	}

	return h, err
}

// await waits for the task behind h, at most deadline when it is positive.
// A wait that ends before the task does fails with a *TaskError wrapping
// ErrDeadlineExceeded or ErrInterrupted; the task keeps running either way.
// When the executor's context is done before the task started, the task will never run
// and the wait is interrupted with pool.ErrPoolStopped.
func (h *handle[T]) await(ctx context.Context, index int, deadline time.Duration) (outcome[T], error) {
	if h.stopped != nil {
		var cancel context.CancelCauseFunc
		ctx, cancel = context.WithCancelCause(ctx)
		defer cancel(nil)

		stop := context.AfterFunc(h.stopped, func() {
			if !h.started.Load() {
				cancel(fmt.Errorf("%w: %w", pool.ErrPoolStopped, context.Cause(h.stopped)))
			}
		})
		defer stop()
	}

	if err := h.future.Wait(ctx, deadline); err != nil {
		if errors.Is(err, future.ErrTimeout) {
			return outcome[T]{}, &TaskError{Index: index, Err: ErrDeadlineExceeded}
		}
		return outcome[T]{}, &TaskError{Index: index, Err: fmt.Errorf("%w: %w", ErrInterrupted, err)}
	}

	return h.future.Result()
}
