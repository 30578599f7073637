package fork

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestValidateTask(t *testing.T) {

	assert.NotPanics(t, func() {
		validateTask[string](func() {})
		validateTask[string](func(context.Context) {})
		validateTask[string](func() error { return nil })
		validateTask[string](func(context.Context) error { return nil })
		validateTask[string](func() string { return "" })
		validateTask[string](func(context.Context) string { return "" })
		validateTask[string](func() (string, error) { return "", nil })
		validateTask[string](func(context.Context) (string, error) { return "", nil })
	})

	assert.PanicsWithValue(t, "unsupported task type: 0", func() {
		validateTask[string](0)
	})
	assert.Panics(t, func() {
		validateTask[string](func() int { return 0 })
	})
}

func TestInvokeTask(t *testing.T) {

	sampleErr := errors.New("sample error")
	ctx := context.WithValue(context.Background(), ctxKey{}, "from context")

	testCases := []struct {
		name    string
		task    any
		output  string
		present bool
		err     error
	}{
		{"func()", func() {}, "", false, nil},
		{"func(ctx)", func(context.Context) {}, "", false, nil},
		{"func() error", func() error { return sampleErr }, "", false, sampleErr},
		{"func(ctx) error", func(context.Context) error { return nil }, "", false, nil},
		{"func() T", func() string { return "X" }, "X", true, nil},
		{"func(ctx) T", func(ctx context.Context) string { return ctx.Value(ctxKey{}).(string) }, "from context", true, nil},
		{"func() (T, error)", func() (string, error) { return "Y", nil }, "Y", true, nil},
		{"func() (T, error) failing", func() (string, error) { return "ignored", sampleErr }, "ignored", false, sampleErr},
		{"func(ctx) (T, error)", func(context.Context) (string, error) { return "Z", nil }, "Z", true, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, present, err := invokeTask[string](ctx, tc.task)

			assert.Equal(t, tc.output, output)
			assert.Equal(t, tc.present, present)
			assert.Equal(t, tc.err, err)
		})
	}
}

func TestInvokeTaskWithNilOutput(t *testing.T) {

	_, present, err := invokeTask[*int](context.Background(), func() *int { return nil })
	assert.NoError(t, err)
	assert.False(t, present)

	_, present, err = invokeTask[any](context.Background(), func() any { return nil })
	assert.NoError(t, err)
	assert.False(t, present)

	_, present, err = invokeTask[map[string]int](context.Background(), func() map[string]int { return nil })
	assert.NoError(t, err)
	assert.False(t, present)

	// A nil slice is an empty collection, not a missing value
	_, present, err = invokeTask[[]int](context.Background(), func() []int { return nil })
	assert.NoError(t, err)
	assert.True(t, present)

	value := 0
	output, present, err := invokeTask[*int](context.Background(), func() *int { return &value })
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Same(t, &value, output)
}

func TestInvokeTaskWithPanic(t *testing.T) {

	output, present, err := invokeTask[string](context.Background(), func() string {
		panic("dummy panic")
	})

	assert.Equal(t, "", output)
	assert.False(t, present)
	assert.ErrorIs(t, err, ErrPanic)
	assert.EqualError(t, err, "task panicked: dummy panic")
}
