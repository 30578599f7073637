package fork

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appError struct {
	code  int
	cause error
}

func (e *appError) Error() string {
	return fmt.Sprintf("app error %d: %v", e.code, e.cause)
}

func (e *appError) Unwrap() error {
	return e.cause
}

func TestSuccess(t *testing.T) {

	r := Success[string, error]("X")

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.True(t, r.IsPresent())

	value, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, "X", value)

	value, err := r.Get()
	assert.NoError(t, err)
	assert.Equal(t, "X", value)

	assert.Equal(t, "X", r.MustGet())
	assert.Equal(t, "X", r.GetOrElse("Y"))
	assert.NoError(t, r.Err())
	assert.NoError(t, r.Cause())
	assert.Equal(t, "Success(X)", r.String())
}

func TestAbsent(t *testing.T) {

	r := Absent[string, error]()

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.False(t, r.IsPresent())

	_, ok := r.Value()
	assert.False(t, ok)

	value, err := r.Get()
	assert.NoError(t, err)
	assert.Equal(t, "", value)
	assert.Equal(t, "Success(<absent>)", r.String())

	// The zero Result is an absent success
	var zero Result[string, error]
	assert.True(t, zero.IsSuccess())
	assert.False(t, zero.IsPresent())
}

func TestFailure(t *testing.T) {

	sampleErr := errors.New("sample error")
	r := Failure[string](sampleErr)

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.False(t, r.IsPresent())

	_, ok := r.Value()
	assert.False(t, ok)

	_, err := r.Get()
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.ErrorIs(t, err, sampleErr)

	assert.Equal(t, "Y", r.GetOrElse("Y"))
	assert.Same(t, sampleErr, r.Err())
	assert.Same(t, sampleErr, r.Cause())
	assert.Equal(t, "Failure(sample error)", r.String())

	assert.PanicsWithError(t, "illegal state: result is a failure: sample error", func() {
		r.MustGet()
	})
}

func TestUnwrap(t *testing.T) {

	value, err := Success[int, error](5).Unwrap()
	assert.Equal(t, 5, value)
	assert.NoError(t, err)

	sampleErr := &appError{code: 7}
	_, appErr := Failure[int](sampleErr).Unwrap()
	assert.Same(t, sampleErr, appErr)
}

func TestObservers(t *testing.T) {

	var seen []string

	Success[string, error]("X").
		OnSuccess(func(v string) { seen = append(seen, "success:"+v) }).
		OnFailure(func(err error) { seen = append(seen, "failure:"+err.Error()) })

	r := Failure[string](errors.New("boom"))
	observed := r.
		OnSuccess(func(v string) { seen = append(seen, "success:"+v) }).
		OnFailure(func(err error) { seen = append(seen, "failure:"+err.Error()) })

	assert.Equal(t, []string{"success:X", "failure:boom"}, seen)
	assert.Equal(t, r.Cause(), observed.Cause())
}

func TestMap(t *testing.T) {

	length := func(s string) (int, error) {
		return len(s), nil
	}

	r := Map(Success[string, error]("hello"), length)
	assert.Equal(t, 5, r.MustGet())

	absent := Map(Absent[string, error](), length)
	assert.True(t, absent.IsSuccess())
	assert.False(t, absent.IsPresent())

	sampleErr := errors.New("sample error")
	failed := Map(Failure[string](sampleErr), length)
	assert.Same(t, sampleErr, failed.Err())
}

func TestMapWithFailingFunction(t *testing.T) {

	sampleErr := errors.New("cannot map")

	r := Map(Success[string, error]("X"), func(string) (int, error) {
		return 0, sampleErr
	})

	assert.True(t, r.IsFailure())
	assert.Same(t, sampleErr, r.Err())
}

func TestMapWithPanickingFunction(t *testing.T) {

	r := Map(Success[string, error]("X"), func(string) (int, error) {
		panic("dummy panic")
	})

	assert.True(t, r.IsFailure())
	assert.ErrorIs(t, r.Err(), ErrPanic)
	assert.EqualError(t, r.Err(), "task panicked: dummy panic")
}

func TestMapKeepsFailureMapper(t *testing.T) {

	r := failure[string](errors.New("unused"), func(err error) *appError {
		return &appError{code: 1, cause: err}
	})
	r = Result[string, *appError]{value: "X", present: true, mapper: r.mapper}

	length := Map(r, func(s string) (int, *appError) {
		return len(s), nil
	})
	assert.Equal(t, 1, length.MustGet())

	panicking := Map(length, func(int) (int, *appError) {
		panic("dummy panic")
	})

	require.True(t, panicking.IsFailure())
	assert.Equal(t, 1, panicking.Err().code)
	assert.ErrorIs(t, panicking.Err(), ErrPanic)
}

func TestMapWithConcreteErrorType(t *testing.T) {

	appErr := &appError{code: 3, cause: errors.New("boom")}

	r := Map(Success[int, *appError](1), func(int) (string, *appError) {
		return "", appErr
	})

	require.True(t, r.IsFailure())
	assert.Same(t, appErr, r.Err())
	assert.Same(t, appErr, r.Cause())

	var observed *appError
	r.OnFailure(func(err *appError) { observed = err })
	assert.Same(t, appErr, observed)

	_, err := r.Get()
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.ErrorIs(t, err, appErr)

	// A typed nil error is no failure
	ok := Map(Success[int, *appError](1), func(v int) (string, *appError) {
		return fmt.Sprint(v), nil
	})
	assert.Equal(t, "1", ok.MustGet())

	// Without a failure mapper a panic cannot become a *appError
	assert.PanicsWithValue(t, "dummy panic", func() {
		Map(Success[int, *appError](1), func(int) (string, *appError) {
			panic("dummy panic")
		})
	})
	assert.PanicsWithValue(t, "dummy panic", func() {
		FlatMap(Success[int, *appError](1), func(int) Result[string, *appError] {
			panic("dummy panic")
		})
	})
}

func TestFailureWithNilError(t *testing.T) {

	assert.Panics(t, func() {
		Failure[string, error](nil)
	})
	assert.Panics(t, func() {
		var appErr *appError
		Failure[string](appErr)
	})
}

func TestFlatMap(t *testing.T) {

	parse := func(s string) Result[int, error] {
		if s == "" {
			return Failure[int](errors.New("empty"))
		}
		return Success[int, error](len(s))
	}

	assert.Equal(t, 3, FlatMap(Success[string, error]("abc"), parse).MustGet())
	assert.EqualError(t, FlatMap(Success[string, error](""), parse).Err(), "empty")
	assert.False(t, FlatMap(Absent[string, error](), parse).IsPresent())

	sampleErr := errors.New("sample error")
	assert.Same(t, sampleErr, FlatMap(Failure[string](sampleErr), parse).Err())

	panicking := FlatMap(Success[string, error]("abc"), func(string) Result[int, error] {
		panic("dummy panic")
	})
	assert.ErrorIs(t, panicking.Err(), ErrPanic)
}

func TestMapError(t *testing.T) {

	sampleErr := errors.New("sample error")

	r := MapError(Failure[string](sampleErr), func(err error) *appError {
		return &appError{code: 42, cause: err}
	})

	require.True(t, r.IsFailure())
	assert.Equal(t, 42, r.Err().code)
	assert.ErrorIs(t, r.Err(), sampleErr)
	assert.Same(t, sampleErr, r.Cause())

	// Retagging composes on the previous failure channel
	twice := MapError(r, func(err *appError) error {
		return fmt.Errorf("wrapped: %w", err)
	})
	assert.EqualError(t, twice.Err(), "wrapped: app error 42: sample error")

	// Successes are untouched
	s := MapError(Success[string, error]("X"), func(err error) *appError {
		return &appError{cause: err}
	})
	assert.Equal(t, "X", s.MustGet())
	assert.Nil(t, s.Err())
}

func TestRemap(t *testing.T) {

	sampleErr := errors.New("sample error")

	first := MapError(Failure[string](sampleErr), func(err error) *appError {
		return &appError{code: 1, cause: err}
	})

	// Remapping starts again from the raw error
	second := Remap(first, func(err error) *appError {
		return &appError{code: 2, cause: err}
	})

	assert.Equal(t, 2, second.Err().code)
	assert.Same(t, sampleErr, second.Err().cause)

	s := Remap(Absent[string, error](), func(err error) *appError {
		return &appError{cause: err}
	})
	assert.True(t, s.IsSuccess())
	assert.False(t, s.IsPresent())
}
