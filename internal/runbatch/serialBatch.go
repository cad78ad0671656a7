// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
)

var _ Runnable[int, int] = (*SerialBatch[int, int])(nil)

// SerialWorkerName is the worker name recorded on results of a SerialBatch.
const SerialWorkerName = "main"

// SerialBatch runs its inputs one after the other on the calling goroutine.
type SerialBatch[I, O any] struct {
	Label  string           // Optional label for the batch
	Inputs []I              // The inputs to process
	Func   WorkerFunc[I, O] // The worker to run on each input
}

// GetLabel returns the label of the batch.
func (b *SerialBatch[I, O]) GetLabel() string {
	if b.Label == "" {
		return "Serial Batch"
	}

	return b.Label
}

// Run implements the Runnable interface for SerialBatch.
// A failing input does not stop the inputs after it. If ctx is done, the inputs not yet
// started are recorded as failures carrying ctx.Err().
func (b *SerialBatch[I, O]) Run(ctx context.Context) Results[I, O] {
	logger := ctxlog.Logger(ctx).
		With("label", b.GetLabel()).
		With("runnableType", "SerialBatch")
	logger.Info("starting serial batch", "items", len(b.Inputs))

	wctx := ctxlog.WithWorker(ctxlog.New(ctx, logger), SerialWorkerName)
	items := Enumerate(b.Inputs)
	results := make(Results[I, O], len(items))

	for _, item := range items {
		results[item.Index] = invoke(wctx, item, b.Func, SerialWorkerName)
	}

	logger.Info("serial batch complete", "failed", len(results.Failed()))

	return results
}

// RunSerial processes inputs one at a time, in order, and returns one result per input.
func RunSerial[I, O any](ctx context.Context, inputs []I, fn WorkerFunc[I, O]) Results[I, O] {
	return (&SerialBatch[I, O]{Inputs: inputs, Func: fn}).Run(ctx)
}
