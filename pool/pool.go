package pool

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/nextbreakpoint/fork/internal/dispatcher"
)

const defaultBatchSize = 1024

var (
	// ErrPoolStopped is returned when submitting a task to a pool that has been stopped
	// or whose context has been cancelled
	ErrPoolStopped = errors.New("worker pool has been stopped and is no longer accepting tasks")

	// ErrQueueFull is returned when submitting a task to a pool whose queue is full
	ErrQueueFull = errors.New("worker pool queue is full")
)

// Pool is a bounded pool of worker goroutines.
// Tasks are queued without blocking the submitter and started in submission order.
// Workers are launched on demand up to the max concurrency and exit when idle.
type Pool struct {
	ctx                 context.Context
	maxConcurrency      int
	queueSize           int
	panicHandler        func(any)
	logger              *slog.Logger
	tasks               chan func()
	workerExited        chan struct{}
	workerCount         atomic.Int64
	workerWaitGroup     sync.WaitGroup
	dispatcher          *dispatcher.Dispatcher[func()]
	handedOverCount     atomic.Uint64
	successfulTaskCount atomic.Uint64
	failedTaskCount     atomic.Uint64
	stopOnce            sync.Once
	stopped             chan struct{}
}

// New creates a worker pool that runs at most maxConcurrency tasks at a time.
// A maxConcurrency of 0 sizes the pool to the number of available CPUs.
func New(maxConcurrency int, options ...Option) *Pool {

	if maxConcurrency < 0 {
		panic("maxConcurrency must be greater than or equal to 0")
	}
	if maxConcurrency == 0 {
		maxConcurrency = runtime.NumCPU()
	}

	pool := &Pool{
		ctx:            context.Background(),
		maxConcurrency: maxConcurrency,
		tasks:          make(chan func()),
		workerExited:   make(chan struct{}, 1),
		stopped:        make(chan struct{}),
	}

	for _, option := range options {
		option(pool)
	}

	if pool.ctx == nil {
		panic("context cannot be nil")
	}
	if pool.queueSize < 0 {
		panic("queueSize must be greater than or equal to 0")
	}
	if pool.logger == nil {
		pool.logger = slog.Default()
	}
	if pool.panicHandler == nil {
		pool.panicHandler = pool.logPanic
	}

	pool.dispatcher = dispatcher.NewDispatcher(pool.ctx, pool.dispatch, defaultBatchSize)

	return pool
}

// Context returns the context associated with this pool
func (p *Pool) Context() context.Context {
	return p.ctx
}

// MaxConcurrency returns the maximum number of tasks that can run at the same time
func (p *Pool) MaxConcurrency() int {
	return p.maxConcurrency
}

// RunningWorkers returns the number of worker goroutines currently alive
func (p *Pool) RunningWorkers() int64 {
	return p.workerCount.Load()
}

// SubmittedTasks returns the total number of tasks accepted by the pool since its creation
func (p *Pool) SubmittedTasks() uint64 {
	return p.dispatcher.WriteCount()
}

// WaitingTasks returns the number of accepted tasks that no worker has taken yet,
// including the ones the dispatcher is holding while every worker is busy
func (p *Pool) WaitingTasks() uint64 {
	submitted := p.dispatcher.WriteCount()
	handedOver := p.handedOverCount.Load()

	if submitted < handedOver {
		return 0
	}
	return submitted - handedOver
}

// SuccessfulTasks returns the number of tasks that returned normally
func (p *Pool) SuccessfulTasks() uint64 {
	return p.successfulTaskCount.Load()
}

// FailedTasks returns the number of tasks that panicked
func (p *Pool) FailedTasks() uint64 {
	return p.failedTaskCount.Load()
}

// CompletedTasks returns the number of tasks that finished, successfully or not
func (p *Pool) CompletedTasks() uint64 {
	return p.successfulTaskCount.Load() + p.failedTaskCount.Load()
}

// Stopped reports whether the pool stopped accepting tasks
func (p *Pool) Stopped() bool {
	return p.dispatcher.Closed()
}

// Go queues a task for execution and returns immediately.
func (p *Pool) Go(task func()) error {
	if task == nil {
		panic("task cannot be nil")
	}

	if p.queueSize > 0 && p.WaitingTasks() >= uint64(p.queueSize) {
		return ErrQueueFull
	}

	if err := p.dispatcher.Write(task); err != nil {
		return ErrPoolStopped
	}

	return nil
}

// Stop stops accepting tasks and returns a channel that is closed once every queued
// and running task has completed.
func (p *Pool) Stop() <-chan struct{} {
	p.stopOnce.Do(func() {
		go func() {
			p.dispatcher.CloseAndWait()
			p.workerWaitGroup.Wait()
			close(p.stopped)
		}()
	})
	return p.stopped
}

// StopAndWait stops the pool and waits for all tasks to complete
func (p *Pool) StopAndWait() {
	<-p.Stop()
}

// dispatch runs on the dispatcher goroutine only, so worker launches never race each other.
func (p *Pool) dispatch(incomingTasks []func()) {

	for _, task := range incomingTasks {
		if !p.handOver(task) {
			// Context cancelled, discard the rest
			return
		}
	}
}

func (p *Pool) handOver(task func()) bool {
	for {
		if p.ctx.Err() != nil {
			p.discard()
			return false
		}

		if p.workerCount.Load() < int64(p.maxConcurrency) {
			// Launch a new worker with this task
			p.workerCount.Add(1)
			p.workerWaitGroup.Add(1)
			p.handedOverCount.Add(1)
			go p.worker(task)
			return true
		}

		select {
		case p.tasks <- task:
			// An idle worker took the task
			p.handedOverCount.Add(1)
			return true
		case <-p.workerExited:
			// A worker exited, check again whether a new one can be launched
		case <-p.ctx.Done():
			p.discard()
			return false
		}
	}
}

func (p *Pool) discard() {
	p.logger.Debug("worker pool context cancelled, discarding queued tasks",
		slog.Uint64("waiting", p.WaitingTasks()))
}
