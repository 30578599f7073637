package fork

import (
	"fmt"
)

// Result is the outcome of a task: either a Success, optionally carrying a value,
// or a Failure carrying an error of type E.
//
// A Failure keeps the raw error it was created from next to the function that turns it
// into E, so the failure channel can be retagged without re-running anything.
// Results are immutable. The zero Result is a Success without a value.
type Result[T any, E error] struct {
	value   T
	present bool
	failed  bool
	cause   error
	mapper  func(error) E
}

// Success creates a successful result carrying value
func Success[T any, E error](value T) Result[T, E] {
	return Result[T, E]{
		value:   value,
		present: true,
	}
}

// Absent creates a successful result that carries no value
func Absent[T any, E error]() Result[T, E] {
	return Result[T, E]{}
}

// Failure creates a failed result carrying err. It panics if err is nil.
func Failure[T any, E error](err E) Result[T, E] {
	if isNil(err) {
		panic(fmt.Errorf("%w: failure error cannot be nil", ErrInvalidArgument))
	}

	return failure[T](err, constant(err))
}

// failure creates a failed result whose error is computed from cause by mapper when observed
func failure[T any, E error](cause error, mapper func(error) E) Result[T, E] {
	return Result[T, E]{
		failed: true,
		cause:  cause,
		mapper: mapper,
	}
}

// IsSuccess reports whether the result is a Success, with or without a value
func (r Result[T, E]) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether the result is a Failure
func (r Result[T, E]) IsFailure() bool {
	return r.failed
}

// IsPresent reports whether the result is a Success carrying a value
func (r Result[T, E]) IsPresent() bool {
	return !r.failed && r.present
}

// Value returns the carried value and whether there is one.
// It returns false for Failures and for Successes without a value.
func (r Result[T, E]) Value() (T, bool) {
	if !r.IsPresent() {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Get returns the value of a Success. On a Failure it returns an error matching
// both ErrIllegalState and the failure's error.
func (r Result[T, E]) Get() (T, error) {
	if r.failed {
		var zero T
		return zero, fmt.Errorf("%w: result is a failure: %w", ErrIllegalState, r.Err())
	}
	return r.value, nil
}

// MustGet is like Get but panics on a Failure
func (r Result[T, E]) MustGet() T {
	value, err := r.Get()
	if err != nil {
		panic(err)
	}
	return value
}

// GetOrElse returns the value of a Success or fallback on a Failure
func (r Result[T, E]) GetOrElse(fallback T) T {
	if r.failed {
		return fallback
	}
	return r.value
}

// Unwrap hands the outcome back as a value and an error, the way Go functions return them.
// The error is the zero E on a Success.
func (r Result[T, E]) Unwrap() (T, E) {
	return r.value, r.Err()
}

// Err returns the error of a Failure, transformed by the result's failure mapper,
// or the zero E on a Success.
func (r Result[T, E]) Err() E {
	if !r.failed {
		var zero E
		return zero
	}
	return r.mapper(r.cause)
}

// Cause returns the raw error a Failure was created from, before any mapping
func (r Result[T, E]) Cause() error {
	if !r.failed {
		return nil
	}
	return r.cause
}

// OnSuccess calls fn with the value of a Success (the zero T when there is none)
// and returns the result unchanged.
func (r Result[T, E]) OnSuccess(fn func(T)) Result[T, E] {
	if !r.failed {
		fn(r.value)
	}
	return r
}

// OnFailure calls fn with the error of a Failure and returns the result unchanged
func (r Result[T, E]) OnFailure(fn func(E)) Result[T, E] {
	if r.failed {
		fn(r.Err())
	}
	return r
}

func (r Result[T, E]) String() string {
	switch {
	case r.failed:
		return fmt.Sprintf("Failure(%v)", r.Err())
	case r.present:
		return fmt.Sprintf("Success(%v)", r.value)
	default:
		return "Success(<absent>)"
	}
}

// Map applies fn to the value of a Success carrying a value.
// If fn returns a non-nil error, the result becomes a Failure carrying it.
// If fn panics, the result becomes a Failure wrapping ErrPanic, turned into an E by the
// failure mapper of r; results built with Success have none, so unless E is an interface
// the panic wrapping error satisfies, the panic is propagated.
// Failures and Successes without a value pass through unchanged.
func Map[T, U any, E error](r Result[T, E], fn func(T) (U, E)) Result[U, E] {
	if r.failed {
		return failure[U](r.cause, r.mapper)
	}
	if !r.present {
		return Result[U, E]{mapper: r.mapper}
	}

	var value U
	var err E
	if p := catch(func() { value, err = fn(r.value) }); p != nil {
		return panicked[U](r, p)
	}
	if !isNil(err) {
		return failure[U](err, constant(err))
	}
	return Result[U, E]{value: value, present: true, mapper: r.mapper}
}

// FlatMap chains a Result-producing function after a Success carrying a value.
// A panic inside fn is handled as in Map.
func FlatMap[T, U any, E error](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.failed {
		return failure[U](r.cause, r.mapper)
	}
	if !r.present {
		return Result[U, E]{mapper: r.mapper}
	}

	var next Result[U, E]
	if p := catch(func() { next = fn(r.value) }); p != nil {
		return panicked[U](r, p)
	}
	return next
}

// MapError retags the failure channel: the error of a Failure becomes fn applied to it.
// Success values are carried over untouched.
func MapError[T any, E, X error](r Result[T, E], fn func(E) X) Result[T, X] {
	var mapper func(error) X
	if r.mapper != nil {
		inner := r.mapper
		mapper = func(cause error) X {
			return fn(inner(cause))
		}
	}

	return Result[T, X]{
		value:   r.value,
		present: r.present,
		failed:  r.failed,
		cause:   r.cause,
		mapper:  mapper,
	}
}

// Remap replaces the failure mapper: the error of a Failure becomes fn applied to the raw
// error the failure was created from. Success values are carried over untouched.
func Remap[T any, E, X error](r Result[T, E], fn func(error) X) Result[T, X] {
	return Result[T, X]{
		value:   r.value,
		present: r.present,
		failed:  r.failed,
		cause:   r.cause,
		mapper:  fn,
	}
}

// panicked turns the value p recovered from a panic into a Failure. It re-panics when r
// has no failure mapper and the error describing the panic is not an E.
func panicked[U, T any, E error](r Result[T, E], p any) Result[U, E] {
	err := fmt.Errorf("%w: %v", ErrPanic, p)

	if r.mapper != nil {
		return failure[U](err, r.mapper)
	}
	if e, ok := err.(E); ok {
		return failure[U](err, constant(e))
	}
	panic(p)
}

// catch runs fn and returns the value of its panic, if any
func catch(fn func()) (p any) {
	defer func() {
		p = recover()
	}()

	fn()
	return nil
}

func constant[E error](err E) func(error) E {
	return func(error) E {
		return err
	}
}
