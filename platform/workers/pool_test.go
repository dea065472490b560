package workers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ResultsIndexedByInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	results := Map(context.Background(), 3, items, func(_ context.Context, n int) (int, error) {
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
		assert.Equal(t, items[i]*10, r.Value)
	}
}

func TestMap_ErrorsStayPerItem(t *testing.T) {
	boom := errors.New("boom")
	items := []string{"ok", "fail", "ok"}

	results := Map(context.Background(), 2, items, func(_ context.Context, s string) (string, error) {
		if s == "fail" {
			return "", boom
		}
		return s, nil
	})

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.NoError(t, results[2].Err)
}

func TestMap_BoundsConcurrency(t *testing.T) {
	var active, peak int32
	items := make([]int, 50)

	Map(context.Background(), 4, items, func(_ context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak, int32(4))
}

func TestMap_CancelledContextReportsCtxErr(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	results := Map(ctx, 2, items, func(_ context.Context, n int) (int, error) {
		return n, nil
	})

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestMap_EmptyInput(t *testing.T) {
	results := Map(context.Background(), 4, []int{}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})

	assert.Empty(t, results)
}

func TestMap_WorkerCountClamped(t *testing.T) {
	// Zero workers must still process everything with a single worker.
	results := Map(context.Background(), 0, []int{1, 2}, func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("n=%d", n), nil
	})

	require.Len(t, results, 2)
	assert.Equal(t, "n=1", results[0].Value)
	assert.Equal(t, "n=2", results[1].Value)
}
