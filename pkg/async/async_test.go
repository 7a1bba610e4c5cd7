package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poly1603/ldesign-validator/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		f := async.Go(context.Background(), func(context.Context) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return "done", nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "done", res)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		expected := errors.New("lookup failed")
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			return 0, expected
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, expected)
	})

	t.Run("recovers panic", func(t *testing.T) {
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			panic("boom")
		})

		res, err := f.Await()
		assert.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "boom")
		assert.Zero(t, res)
	})

	t.Run("canceled context skips work", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Go(ctx, func(context.Context) (int, error) {
			called = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("n=%d", n*2), nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "n=42", res)
}

func TestResolvedAndRejected(t *testing.T) {
	t.Parallel()

	r := async.Resolved(7)
	assert.True(t, r.IsComplete())
	v, err := r.Await()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	expected := errors.New("nope")
	rej := async.Rejected[int](expected)
	assert.True(t, rej.IsComplete())
	_, err = rej.Await()
	assert.ErrorIs(t, err, expected)
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	defer close(block)

	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes in time", func(t *testing.T) {
		f := async.Resolved("ok")
		res, err := f.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
	})

	t.Run("times out", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)

		f := async.Go(context.Background(), func(context.Context) (int, error) {
			<-block
			return 1, nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("results in argument order", func(t *testing.T) {
		ctx := context.Background()
		futures := make([]*async.Future[int], 5)
		for i := range futures {
			futures[i] = async.Async(ctx, i, func(_ context.Context, n int) (int, error) {
				// later futures finish first
				time.Sleep(time.Duration(5-n) * 5 * time.Millisecond)
				return n * 10, nil
			})
		}

		results, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 10, 20, 30, 40}, results)
	})

	t.Run("first error in order, all awaited", func(t *testing.T) {
		errA := errors.New("a")
		errB := errors.New("b")

		results, err := async.WaitAll(
			async.Resolved(1),
			async.Rejected[int](errA),
			async.Rejected[int](errB),
			async.Resolved(4),
		)
		assert.ErrorIs(t, err, errA)
		assert.Equal(t, []int{1, 0, 0, 4}, results)
	})

	t.Run("no futures", func(t *testing.T) {
		results, err := async.WaitAll[int]()
		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}
