// Package antspool runs fork tasks on a github.com/panjf2000/ants/v2 pool.
package antspool

import (
	"github.com/panjf2000/ants/v2"
)

// Executor submits tasks to an ants pool.
// Rejections are reported with the pool's own errors, such as ants.ErrPoolClosed
// or, for non-blocking pools, ants.ErrPoolOverload.
type Executor struct {
	pool *ants.Pool
}

// New wraps an existing ants pool. The pool stays owned by the caller.
func New(pool *ants.Pool) *Executor {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &Executor{pool: pool}
}

// Go submits task to the pool
func (e *Executor) Go(task func()) error {
	return e.pool.Submit(task)
}

// Pool returns the wrapped ants pool
func (e *Executor) Pool() *ants.Pool {
	return e.pool
}
