// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"time"
)

// WorkerFunc processes a single input.
// The context carries the logger of the worker executing the call, see ctxlog.WithWorker.
type WorkerFunc[I, O any] func(ctx context.Context, input I) (O, error)

// Runnable is a batch that can be executed.
type Runnable[I, O any] interface {
	// Run executes the batch and returns one result per input, in input order.
	// It blocks until every input has a result.
	Run(context.Context) Results[I, O]
	// GetLabel returns the label of the batch.
	GetLabel() string
}

// Timed runs r and returns its results together with the wall clock time taken.
func Timed[I, O any](ctx context.Context, r Runnable[I, O]) (Results[I, O], time.Duration) {
	start := time.Now()
	res := r.Run(ctx)

	return res, time.Since(start)
}
