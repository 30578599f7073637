// Package errgrouppool runs fork tasks on a golang.org/x/sync/errgroup Group.
package errgrouppool

import (
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrLimitReached is returned when the group already runs as many goroutines as its limit allows
var ErrLimitReached = errors.New("errgroup limit reached")

// Executor starts tasks as goroutines of an errgroup.Group.
// Task failures are reported through the fork's results, never through the group,
// so Wait only waits.
type Executor struct {
	group *errgroup.Group
}

// New creates an executor on a new group running at most limit tasks at once.
// A negative limit means no limit.
func New(limit int) *Executor {
	group := &errgroup.Group{}
	group.SetLimit(limit)
	return &Executor{group: group}
}

// Go starts task if the group limit allows it and fails with ErrLimitReached otherwise.
// It never waits for a goroutine slot.
func (e *Executor) Go(task func()) error {
	started := e.group.TryGo(func() error {
		task()
		return nil
	})
	if !started {
		return ErrLimitReached
	}
	return nil
}

// Wait blocks until every started task has returned
func (e *Executor) Wait() {
	_ = e.group.Wait()
}
