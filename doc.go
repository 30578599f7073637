/*
Package fork runs independent blocking tasks concurrently on a shared worker pool and
collects their outcomes in the order they were submitted.

Each outcome is a Result: a Success, which may or may not carry a value, or a Failure
carrying an error. Tasks never make a Fork return an error or panic; failures are values
the caller inspects, and turning one into a Go error is always an explicit call
(Result.Get, Result.Unwrap, Result.MustGet).

	p := pool.New(0) // as many workers as CPUs
	defer p.StopAndWait()

	f, err := fork.New[string](p)
	if err != nil {
		return err
	}

	f = f.WithDeadline(time.Second).Submit(fetchA, fetchB, fetchC)

	for i, result := range f.Stream(ctx) {
		// result i belongs to the i-th submitted task, whatever order they completed in
	}

Submitting is eager: every task is handed to the executor before Submit returns.
A Fork is immutable, so Submit and the With methods return new forks that share the
executor and the tasks submitted so far.

A deadline only bounds how long the caller waits for each task. A task whose wait times
out fails with ErrDeadlineExceeded but keeps running and keeps its worker busy until it
returns; size pools and deadlines with that in mind. Likewise a done context passed to
Stream or Await fails the pending waits with ErrInterrupted without stopping any task.

The default failure mapper passes errors through unchanged. WithFailureMapper replaces it,
including for failures already captured, since mapping happens when results are observed.
*/
package fork
