// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
)

var _ Runnable[int, int] = (*ParallelBatch[int, int])(nil)

// ParallelBatch represents a collection of inputs, which are run through a Pool.
type ParallelBatch[I, O any] struct {
	Label  string           // Optional label for the batch
	Inputs []I              // The inputs to process
	Func   WorkerFunc[I, O] // The worker to run on each input
	Pool   Pool[I, O]       // The pool to run on, nil means NewPool(WorkloadCPU, 0)
}

// GetLabel returns the label of the batch.
func (b *ParallelBatch[I, O]) GetLabel() string {
	if b.Label == "" {
		return "Parallel Batch"
	}

	return b.Label
}

// Run implements the Runnable interface for ParallelBatch.
// Results are returned in input order whatever order the pool completes them in.
func (b *ParallelBatch[I, O]) Run(ctx context.Context) Results[I, O] {
	pool := b.Pool
	if pool == nil {
		pool = NewPool[I, O](WorkloadCPU, 0)
	}

	logger := ctxlog.Logger(ctx).
		With("label", b.GetLabel()).
		With("runnableType", "ParallelBatch")
	logger.Info("starting parallel batch",
		"items", len(b.Inputs),
		"pool", pool.Name(),
		"workers", pool.Size())

	results := pool.Run(ctxlog.New(ctx, logger), Enumerate(b.Inputs), b.Func)

	logger.Info("parallel batch complete", "failed", len(results.Failed()))

	return results
}

// RunParallel processes inputs on pool and returns one result per input, in input order.
// A nil pool runs on NewPool(WorkloadCPU, 0).
func RunParallel[I, O any](ctx context.Context, inputs []I, fn WorkerFunc[I, O], pool Pool[I, O]) Results[I, O] {
	return (&ParallelBatch[I, O]{Inputs: inputs, Func: fn, Pool: pool}).Run(ctx)
}
