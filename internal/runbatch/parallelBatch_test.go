// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matt-FFFFFF/fanout/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// jitter sleeps a little so that completion order differs from input order.
func jitter(ctx context.Context, n int) (string, error) {
	time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)

	if n%5 == 0 {
		return "", fmt.Errorf("multiple of five: %d", n)
	}

	return fmt.Sprintf("v%d", n*n), nil
}

func pools(size int) []Pool[int, string] {
	return []Pool[int, string]{
		NewIsolatedPool[int, string](size),
		NewConcurrentPool[int, string](size),
	}
}

func assertEquivalent(t *testing.T, want, got Results[int, string]) {
	t.Helper()
	require.Len(t, got, len(want))

	for i := range want {
		require.NotNil(t, got[i], "missing result at index %d", i)
		assert.Equal(t, want[i].Index, got[i].Index)
		assert.Equal(t, want[i].Input, got[i].Input)
		assert.Equal(t, want[i].Value, got[i].Value)
		assert.Equal(t, want[i].Status, got[i].Status)

		if want[i].Error == nil {
			assert.NoError(t, got[i].Error)
		} else {
			assert.EqualError(t, got[i].Error, want[i].Error.Error())
		}
	}
}

func TestParallelBatchRun_MatchesSerial(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 23

	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = i + 1
	}

	want := RunSerial(context.Background(), inputs, jitter)

	for _, k := range []int{1, 2, n, n * 2} {
		for _, pool := range pools(k) {
			t.Run(fmt.Sprintf("%s-%d", pool.Name(), k), func(t *testing.T) {
				got := RunParallel(context.Background(), inputs, jitter, pool)
				assertEquivalent(t, want, got)
			})
		}
	}
}

func TestParallelBatchRun_ExactlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 200

	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = i
	}

	for _, pool := range pools(7) {
		t.Run(pool.Name(), func(t *testing.T) {
			calls := make([]atomic.Int32, n)
			fn := func(_ context.Context, i int) (string, error) {
				calls[i].Add(1)
				return "", nil
			}

			results := RunParallel(context.Background(), inputs, fn, pool)
			require.Len(t, results, n)

			seen := make(map[int]bool, n)
			for i, res := range results {
				require.NotNil(t, res)
				assert.Equal(t, i, res.Index)
				assert.False(t, seen[res.Index], "duplicate index %d", res.Index)
				seen[res.Index] = true
				assert.Equal(t, int32(1), calls[i].Load(), "input %d should run exactly once", i)
			}
		})
	}
}

func TestParallelBatchRun_BoundedConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	const size = 3

	inputs := make([]int, 30)

	for _, pool := range pools(size) {
		t.Run(pool.Name(), func(t *testing.T) {
			var inFlight, peak atomic.Int32

			fn := func(_ context.Context, _ int) (string, error) {
				cur := inFlight.Add(1)
				defer inFlight.Add(-1)

				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}

				time.Sleep(2 * time.Millisecond)

				return "", nil
			}

			results := RunParallel(context.Background(), inputs, fn, pool)
			require.Len(t, results, len(inputs))
			assert.LessOrEqual(t, peak.Load(), int32(size))
		})
	}
}

func TestParallelBatchRun_PanicIsolated(t *testing.T) {
	defer goleak.VerifyNone(t)

	fn := func(_ context.Context, n int) (string, error) {
		if n == 3 {
			panic("boom")
		}

		return fmt.Sprint(n), nil
	}

	for _, pool := range pools(2) {
		t.Run(pool.Name(), func(t *testing.T) {
			results := RunParallel(context.Background(), []int{1, 2, 3, 4, 5}, fn, pool)
			require.Len(t, results, 5)
			require.ErrorIs(t, results[2].Error, ErrWorkerPanic)
			assert.Contains(t, results[2].Error.Error(), "boom")
			assert.Equal(t, []string{"1", "2", "", "4", "5"}, results.Values())
		})
	}
}

func TestParallelBatchRun_CancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, pool := range pools(4) {
		t.Run(pool.Name(), func(t *testing.T) {
			results := RunParallel(ctx, []int{1, 2, 3}, jitter, pool)
			require.Len(t, results, 3)

			for _, res := range results {
				require.ErrorIs(t, res.Error, context.Canceled)
			}
		})
	}
}

func TestParallelBatchRun_WorkerNames(t *testing.T) {
	results := RunParallel(context.Background(), []int{1, 2, 3, 4}, jitter, NewConcurrentPool[int, string](2))
	for _, res := range results {
		assert.Contains(t, []string{"worker-1", "worker-2"}, res.Worker)
	}

	results = RunParallel(context.Background(), []int{1, 2, 3, 4}, jitter, NewIsolatedPool[int, string](2))
	for _, res := range results {
		assert.Contains(t, []string{"isolated-1", "isolated-2"}, res.Worker)
	}
}

func TestParallelBatchRun_DefaultPool(t *testing.T) {
	defer goleak.VerifyNone(t)

	batch := &ParallelBatch[int, string]{Inputs: []int{1, 2}, Func: jitter}
	results := batch.Run(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "Parallel Batch", batch.GetLabel())
	assert.Equal(t, []string{"v1", "v4"}, results.Values())
}

func TestTimed(t *testing.T) {
	batch := &SerialBatch[int, string]{
		Inputs: []int{1},
		Func: func(_ context.Context, _ int) (string, error) {
			time.Sleep(5 * time.Millisecond)
			return "done", nil
		},
	}

	results, elapsed := Timed[int, string](context.Background(), batch)
	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	assert.GreaterOrEqual(t, results[0].Elapsed, 5*time.Millisecond)
}

func TestParallelBatchRun_ErrAggregates(t *testing.T) {
	results := RunParallel(context.Background(), []int{5, 6, 10}, jitter, NewConcurrentPool[int, string](2))
	err := results.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 0 (5)")
	assert.Contains(t, err.Error(), "item 2 (10)")
	assert.NotContains(t, err.Error(), "item 1")
	assert.False(t, errors.Is(err, ErrWorkerPanic))
}

func TestParallelBatchRun_ReportsProgress(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := []int{1, 2, 3, 4, 5, 6}

	for _, pool := range pools(3) {
		t.Run(pool.Name(), func(t *testing.T) {
			rep := progress.NewChannelReporter(2 * len(inputs))

			var started, completed, failed atomic.Int32

			rep.Listen(progress.ListenerFunc(func(ev progress.Event) {
				switch ev.Type {
				case progress.EventStarted:
					started.Add(1)
				case progress.EventCompleted:
					completed.Add(1)
				case progress.EventFailed:
					failed.Add(1)
				}
			}))

			ctx := progress.WithReporter(context.Background(), rep)
			RunParallel(ctx, inputs, jitter, pool)
			rep.Close()

			assert.EqualValues(t, len(inputs), started.Load())
			assert.EqualValues(t, 5, completed.Load())
			assert.EqualValues(t, 1, failed.Load())
		})
	}
}

func TestParallelBatchRun_ReportsSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := progress.NewChannelReporter(4)
	RunParallel(progress.WithReporter(ctx, rep), []int{1, 2}, jitter, NewConcurrentPool[int, string](2))
	rep.Close()

	var types []progress.EventType
	for ev := range rep.Events() {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []progress.EventType{progress.EventSkipped, progress.EventSkipped}, types)
}
