package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUpToBound(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_RecoversMidway(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, 5, 50*time.Millisecond, func(context.Context) error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_UnrecoverableStopsImmediately(t *testing.T) {
	calls := 0
	missing := errors.New("no such row")
	err := Do(context.Background(), 3, 50*time.Millisecond, func(context.Context) error {
		calls++
		return Unrecoverable(missing)
	})

	assert.ErrorIs(t, err, missing)
	assert.Equal(t, 1, calls)
}

func TestUnrecoverable_NilPassesThrough(t *testing.T) {
	assert.NoError(t, Unrecoverable(nil))
}

func TestDo_AtLeastOneAttempt(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), 0, time.Millisecond, func(context.Context) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
}
