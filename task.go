package fork

import (
	"context"
	"fmt"
	"reflect"
)

// validateTask panics if task is not one of the shapes a Fork[T, E] accepts:
//
//	func()                              func() T
//	func() error                        func() (T, error)
//	func(context.Context)               func(context.Context) T
//	func(context.Context) error         func(context.Context) (T, error)
func validateTask[T any](task any) {

	switch task.(type) {
	case func():
		return
	case func(context.Context):
		return
	case func() error:
		return
	case func(context.Context) error:
		return
	case func() T:
		return
	case func(context.Context) T:
		return
	case func() (T, error):
		return
	case func(context.Context) (T, error):
		return
	default:
		panic(fmt.Sprintf("unsupported task type: %#v", task))
	}
}

// invokeTask runs task and reports its output, whether the output is a value and its error.
// Tasks without an output, and tasks returning a nil pointer, interface, map, channel or
// function, succeed without a value. A panic is turned into an error wrapping ErrPanic.
func invokeTask[T any](ctx context.Context, task any) (output T, present bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			output, present, err = zero, false, fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()

	switch t := task.(type) {
	case func():
		t()
	case func(context.Context):
		t(ctx)
	case func() error:
		err = t()
	case func(context.Context) error:
		err = t(ctx)
	case func() T:
		output = t()
		present = true
	case func(context.Context) T:
		output = t(ctx)
		present = true
	case func() (T, error):
		output, err = t()
		present = true
	case func(context.Context) (T, error):
		output, err = t(ctx)
		present = true
	default:
		panic(fmt.Sprintf("unsupported task type: %#v", task))
	}

	if err != nil || isNil(output) {
		present = false
	}
	return
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
