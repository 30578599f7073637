package fork

// Executor runs tasks on goroutines it owns. Go must not wait for the task to run;
// it returns an error when the task is rejected.
//
// *pool.Pool implements Executor, and adapters exist for ants, gammazero/workerpool
// and errgroup.
type Executor interface {
	Go(task func()) error
}

// ExecutorFunc adapts an ordinary function to the Executor interface
type ExecutorFunc func(task func()) error

func (f ExecutorFunc) Go(task func()) error {
	return f(task)
}
