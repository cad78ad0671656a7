// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
)

var _ Pool[int, int] = (*IsolatedPool[int, int])(nil)

// IsolatedPool runs items on long-lived workers that only communicate by message.
// Each worker receives WorkItems on a channel and sends Results back; workers never see
// each other's inputs or the result table, which is only written by the collecting goroutine.
type IsolatedPool[I, O any] struct {
	size int
}

// NewIsolatedPool creates an IsolatedPool with size workers. A size below 1 is treated as 1.
func NewIsolatedPool[I, O any](size int) *IsolatedPool[I, O] {
	return &IsolatedPool[I, O]{size: max(size, 1)}
}

// Size implements Pool.
func (p *IsolatedPool[I, O]) Size() int {
	return p.size
}

// Name implements Pool.
func (p *IsolatedPool[I, O]) Name() string {
	return "isolated"
}

// Run implements Pool.
func (p *IsolatedPool[I, O]) Run(ctx context.Context, items []WorkItem[I], fn WorkerFunc[I, O]) Results[I, O] {
	results := make(Results[I, O], len(items))
	if len(items) == 0 {
		return results
	}

	workers := min(p.size, len(items))
	ctxlog.Debug(ctx, "starting isolated pool", "workers", workers, "items", len(items))

	// Unbuffered so items queue in the feeder until a worker is free.
	inbox := make(chan WorkItem[I])
	outbox := make(chan *Result[I, O], workers)
	wg := &sync.WaitGroup{}

	for w := range workers {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()

			wctx := ctxlog.WithWorker(ctx, name)
			for item := range inbox {
				outbox <- invoke(wctx, item, fn, name)
			}
		}(fmt.Sprintf("isolated-%d", w+1))
	}

	go func() {
		defer close(inbox)

		for _, item := range items {
			inbox <- item
		}
	}()

	go func() {
		wg.Wait()
		close(outbox)
	}()

	for res := range outbox {
		results[res.Index] = res
	}

	return results
}
