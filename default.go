package fork

import (
	"github.com/nextbreakpoint/fork/config"
	"github.com/nextbreakpoint/fork/pool"
)

// NewDefault creates a Fork on a new worker pool configured from the environment
// (see package config). Unless FORK_POOL_SIZE says otherwise the pool runs as many
// tasks at once as there are CPUs, and FORK_DEADLINE sets the fork's deadline.
//
// The pool belongs to the caller, who must call the returned stop function once done
// with every fork derived from the returned one. Stopping waits for queued tasks.
func NewDefault[T any]() (Fork[T, error], func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return Fork[T, error]{}, nil, err
	}

	logger := cfg.Logger()

	p := pool.New(cfg.PoolSize,
		pool.WithQueueSize(cfg.QueueSize),
		pool.WithLogger(logger))

	f, err := New[T](p)
	if err != nil {
		p.StopAndWait()
		return Fork[T, error]{}, nil, err
	}

	return f.WithDeadline(cfg.Deadline).WithLogger(logger), p.StopAndWait, nil
}
