package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/async"
)

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	result, err := future.Await()
	require.NoError(t, err)
	require.Equal(t, 42, result)
}

func TestAsync_Error(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	future := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		return 0, wantErr
	})

	_, err := future.Await()
	require.ErrorIs(t, err, wantErr)
}

func TestAsync_PreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	future := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		t.Error("function must not run with canceled context")
		return 0, nil
	})

	_, err := future.Await()
	require.ErrorIs(t, err, context.Canceled)
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	slow := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 1, nil
	})

	_, err := slow.AwaitWithTimeout(10 * time.Millisecond)
	require.ErrorIs(t, err, async.ErrTimeout)

	// The computation still finishes
	result, err := slow.Await()
	require.NoError(t, err)
	require.Equal(t, 1, result)
}

func TestFuture_IsComplete(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	future := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		close(started)
		<-release
		return 1, nil
	})

	<-started
	require.False(t, future.IsComplete())

	close(release)
	_, err := future.Await()
	require.NoError(t, err)
	require.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }

	f1 := async.Async(context.Background(), 1, double)
	f2 := async.Async(context.Background(), 2, double)
	f3 := async.Async(context.Background(), 3, double)

	results, err := async.WaitAll(f1, f2, f3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6}, results)
}
