package pool

import (
	"context"
	"log/slog"
)

// Option represents an option that can be passed when instantiating a worker pool to customize it
type Option func(*Pool)

// WithContext sets the context of the pool. Cancelling it stops the pool:
// new tasks are rejected and tasks still queued are discarded.
func WithContext(ctx context.Context) Option {
	return func(p *Pool) {
		p.ctx = ctx
	}
}

// WithQueueSize sets the max number of tasks that can wait in the pool's queue.
// Tasks count as waiting from the moment Go accepts them until a worker takes them.
// Once the limit is reached, Go returns ErrQueueFull instead of queueing the task.
// Concurrent callers of Go may overshoot it slightly. Zero means unbounded.
func WithQueueSize(size int) Option {
	return func(p *Pool) {
		p.queueSize = size
	}
}

// WithPanicHandler sets the function invoked when a task panics
func WithPanicHandler(panicHandler func(any)) Option {
	return func(p *Pool) {
		p.panicHandler = panicHandler
	}
}

// WithLogger sets the logger used by the pool
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}
