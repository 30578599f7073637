package fork

import (
	"context"
)

// Collect folds the values of the submitted tasks with reducer, in submission order,
// using fallback in place of every failure. Successes without a value are skipped.
// The fold starts from the first contributing value; with none, Collect returns the zero T.
// It waits for every task and never fails. reducer is assumed to be associative.
func (f Fork[T, E]) Collect(ctx context.Context, reducer func(T, T) T, fallback T) T {
	var acc T
	var started bool

	for _, result := range f.Stream(ctx) {
		value, ok := result.Value()
		if result.IsFailure() {
			value = fallback
		} else if !ok {
			continue
		}

		if !started {
			acc, started = value, true
			continue
		}
		acc = reducer(acc, value)
	}

	return acc
}

// CollectOrFail folds the values of the submitted tasks with reducer, in submission order,
// and stops at the first failure, which it returns. Tasks after it are not waited for.
// Successes without a value are skipped; when no task contributes a value the result is a
// Success without a value. reducer is assumed to be associative.
func (f Fork[T, E]) CollectOrFail(ctx context.Context, reducer func(T, T) T) Result[T, E] {
	var acc T
	var started bool

	for _, result := range f.Stream(ctx) {
		if result.IsFailure() {
			return result
		}

		value, ok := result.Value()
		if !ok {
			continue
		}

		if !started {
			acc, started = value, true
			continue
		}
		acc = reducer(acc, value)
	}

	if !started {
		return Result[T, E]{mapper: f.mapper}
	}
	return Result[T, E]{value: acc, present: true, mapper: f.mapper}
}

// Fold accumulates the values of the submitted tasks into initial with fn, in submission order,
// and stops at the first failure, which it returns retyped. Successes without a value are skipped.
func Fold[T any, E error, R any](ctx context.Context, f Fork[T, E], initial R, fn func(R, T) R) Result[R, E] {
	acc := initial

	for _, result := range f.Stream(ctx) {
		if result.IsFailure() {
			return failure[R](result.cause, result.mapper)
		}

		if value, ok := result.Value(); ok {
			acc = fn(acc, value)
		}
	}

	return Result[R, E]{value: acc, present: true, mapper: f.mapper}
}
