package future

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned by Wait when the timeout elapses before the future is resolved.
var ErrTimeout = errors.New("timed out waiting for future")

// Resolver resolves a future with a value and an error. Only the first call has any effect.
type Resolver[V any] func(value V, err error)

// A Future represents a value that will be available once a task completes.
// It is backed by a context that is cancelled with the resolution as its cause,
// which makes resolving it safe from any goroutine and idempotent.
type Future[V any] struct {
	ctx context.Context
}

// New creates an unresolved future and the function that resolves it.
func New[V any]() (*Future[V], Resolver[V]) {
	ctx, cancel := context.WithCancelCause(context.Background())
	future := &Future[V]{
		ctx: ctx,
	}
	return future, func(value V, err error) {
		cancel(&resolution[V]{
			value: value,
			err:   err,
		})
	}
}

// Resolved creates a future that is already resolved with the given value and error.
func Resolved[V any](value V, err error) *Future[V] {
	future, resolve := New[V]()
	resolve(value, err)
	return future
}

// Done returns a channel that is closed once the future is resolved.
func (f *Future[V]) Done() <-chan struct{} {
	return f.ctx.Done()
}

// Resolved reports whether the future has been resolved, without blocking.
func (f *Future[V]) Resolved() bool {
	select {
	case <-f.ctx.Done():
		return true
	default:
		return false
	}
}

// Wait blocks until the future is resolved, ctx is done or the timeout elapses.
// A timeout less than or equal to zero waits without bound.
// It returns nil once the future is resolved, ErrTimeout if the timeout elapsed
// and the cause of ctx if ctx was done first.
// Waiting never affects the task that resolves the future.
func (f *Future[V]) Wait(ctx context.Context, timeout time.Duration) error {
	// Prioritize an already available resolution
	if f.Resolved() {
		return nil
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-f.ctx.Done():
		return nil
	case <-expired:
		return ErrTimeout
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

// Result returns the value and error the future was resolved with.
// It blocks until the future is resolved.
func (f *Future[V]) Result() (V, error) {
	<-f.ctx.Done()

	if res, ok := context.Cause(f.ctx).(*resolution[V]); ok {
		return res.value, res.err
	}

	// Unreachable: the parent context is never cancelled
	var zero V
	return zero, context.Cause(f.ctx)
}

type resolution[V any] struct {
	value V
	err   error
}

func (r *resolution[V]) Error() string {
	if r.err != nil {
		return r.err.Error()
	}
	return fmt.Sprintf("future value: %v", r.value)
}
