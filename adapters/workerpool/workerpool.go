// Package workerpool runs fork tasks on a github.com/gammazero/workerpool pool.
package workerpool

import (
	"errors"

	gwp "github.com/gammazero/workerpool"
)

// ErrStopped is returned when submitting to a stopped worker pool
var ErrStopped = errors.New("workerpool has been stopped")

// Executor submits tasks to a gammazero worker pool
type Executor struct {
	pool *gwp.WorkerPool
}

// New wraps an existing worker pool. The pool stays owned by the caller.
func New(pool *gwp.WorkerPool) *Executor {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &Executor{pool: pool}
}

// Go submits task to the pool. The pool queues without bound, so the only
// rejection is a stopped pool.
func (e *Executor) Go(task func()) (err error) {
	if e.pool.Stopped() {
		return ErrStopped
	}

	// The pool may be stopped between the check and the submission
	defer func() {
		if recover() != nil {
			err = ErrStopped
		}
	}()

	e.pool.Submit(task)
	return nil
}

// Pool returns the wrapped worker pool
func (e *Executor) Pool() *gwp.WorkerPool {
	return e.pool
}
