package dispatcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"
)

var ErrDispatcherClosed = errors.New("dispatcher has been closed")

// Dispatcher receives values from many goroutines and hands them, in FIFO order and in batches,
// to a single consumer goroutine running dispatchFunc. Writes never block on the consumer.
type Dispatcher[T any] struct {
	ctx               context.Context
	mutex             sync.Mutex
	buffer            *deque.Deque[T]
	bufferHasElements chan struct{}
	dispatchFunc      func([]T)
	batchSize         int
	closed            bool
	waitGroup         sync.WaitGroup
	writeCount        atomic.Uint64
	readCount         atomic.Uint64
}

// NewDispatcher creates a dispatcher and starts its consumer goroutine.
// The consumer exits when ctx is done or after the dispatcher is closed and drained.
func NewDispatcher[T any](ctx context.Context, dispatchFunc func([]T), batchSize int) *Dispatcher[T] {
	if batchSize <= 0 {
		batchSize = 1
	}

	dispatcher := &Dispatcher[T]{
		ctx:               ctx,
		buffer:            deque.New[T](),
		bufferHasElements: make(chan struct{}, 1),
		dispatchFunc:      dispatchFunc,
		batchSize:         batchSize,
	}

	dispatcher.waitGroup.Add(1)
	go dispatcher.run()

	return dispatcher
}

// Write appends values to the dispatcher's buffer
func (d *Dispatcher[T]) Write(values ...T) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed || d.ctx.Err() != nil {
		return ErrDispatcherClosed
	}

	for _, value := range values {
		d.buffer.PushBack(value)
	}
	d.writeCount.Add(uint64(len(values)))

	// Notify there are elements in the buffer
	select {
	case d.bufferHasElements <- struct{}{}:
	default:
	}

	return nil
}

// WriteCount returns the number of elements written to the dispatcher
func (d *Dispatcher[T]) WriteCount() uint64 {
	return d.writeCount.Load()
}

// ReadCount returns the number of elements handed to the dispatch function
func (d *Dispatcher[T]) ReadCount() uint64 {
	return d.readCount.Load()
}

// Len returns the number of elements waiting in the buffer
func (d *Dispatcher[T]) Len() uint64 {
	writeCount := d.writeCount.Load()
	readCount := d.readCount.Load()

	if writeCount < readCount {
		return 0
	}

	return writeCount - readCount
}

// Closed reports whether the dispatcher stopped accepting writes
func (d *Dispatcher[T]) Closed() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.closed || d.ctx.Err() != nil
}

// Close stops accepting writes. Elements already buffered are still dispatched.
func (d *Dispatcher[T]) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	close(d.bufferHasElements)
}

// CloseAndWait closes the dispatcher and waits for all buffered elements to be dispatched
func (d *Dispatcher[T]) CloseAndWait() {
	d.Close()
	d.waitGroup.Wait()
}

func (d *Dispatcher[T]) read(batch []T) []T {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	batch = batch[:0]
	for len(batch) < d.batchSize && d.buffer.Len() > 0 {
		batch = append(batch, d.buffer.PopFront())
	}
	d.readCount.Add(uint64(len(batch)))

	return batch
}

func (d *Dispatcher[T]) run() {
	defer d.waitGroup.Done()

	batch := make([]T, 0, d.batchSize)

	for {
		// Prioritize context cancellation over dispatching
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		select {
		case <-d.ctx.Done():
			return
		case _, ok := <-d.bufferHasElements:

			// Drain everything that is pending
			for {
				batch = d.read(batch)
				if len(batch) == 0 {
					break
				}
				d.dispatchFunc(batch)
			}

			if !ok {
				return
			}
		}
	}
}
