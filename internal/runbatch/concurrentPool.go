// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

var _ Pool[int, int] = (*ConcurrentPool[int, int])(nil)

// ConcurrentPool runs items on workers that share memory with the caller.
// Workers claim the next unprocessed index from a shared cursor and write their result
// straight into the shared result table. Every index is claimed exactly once.
type ConcurrentPool[I, O any] struct {
	size int
}

// NewConcurrentPool creates a ConcurrentPool with size workers. A size below 1 is treated as 1.
func NewConcurrentPool[I, O any](size int) *ConcurrentPool[I, O] {
	return &ConcurrentPool[I, O]{size: max(size, 1)}
}

// Size implements Pool.
func (p *ConcurrentPool[I, O]) Size() int {
	return p.size
}

// Name implements Pool.
func (p *ConcurrentPool[I, O]) Name() string {
	return "concurrent"
}

// Run implements Pool.
func (p *ConcurrentPool[I, O]) Run(ctx context.Context, items []WorkItem[I], fn WorkerFunc[I, O]) Results[I, O] {
	results := make(Results[I, O], len(items))
	if len(items) == 0 {
		return results
	}

	workers := min(p.size, len(items))
	ctxlog.Debug(ctx, "starting concurrent pool", "workers", workers, "items", len(items))

	var (
		next atomic.Int64
		g    errgroup.Group
	)

	for w := range workers {
		name := fmt.Sprintf("worker-%d", w+1)

		g.Go(func() error {
			wctx := ctxlog.WithWorker(ctx, name)

			for {
				i := int(next.Add(1) - 1)
				if i >= len(items) {
					return nil
				}

				// results[i] is only ever written by the worker that claimed i.
				results[items[i].Index] = invoke(wctx, items[i], fn, name)
			}
		})
	}

	_ = g.Wait() // workers never return an error, failures are recorded per item

	return results
}
