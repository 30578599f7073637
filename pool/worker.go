package pool

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// worker runs firstTask and then keeps taking tasks handed over by the dispatcher.
// It exits as soon as no task is immediately available.
func (p *Pool) worker(firstTask func()) {
	defer func() {
		p.workerCount.Add(-1)
		p.workerWaitGroup.Done()

		// Let the dispatcher know there is room for another worker
		select {
		case p.workerExited <- struct{}{}:
		default:
		}
	}()

	p.run(firstTask)

	for {
		select {
		case task := <-p.tasks:
			p.run(task)
		default:
			return
		}
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.failedTaskCount.Add(1)
			p.panicHandler(r)
			return
		}
		p.successfulTaskCount.Add(1)
	}()

	task()
}

func (p *Pool) logPanic(value any) {
	p.logger.Error("worker recovered from a panic",
		slog.String("panic", fmt.Sprint(value)),
		slog.String("stack", string(debug.Stack())))
}
