// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/progress"
)

// ErrWorkerPanic is matched by errors.Is for every result produced by a panicking worker.
var ErrWorkerPanic = errors.New("worker panic")

// PanicError is the error recorded when a worker function panics.
// It is constructed with the value that caused the panic.
type PanicError struct {
	v any
}

// NewPanicError creates a new PanicError with the given value.
func NewPanicError(v any) error {
	return &PanicError{v: v}
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	prefix := "worker panic:"

	switch x := e.v.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Is makes errors.Is(err, ErrWorkerPanic) true.
func (e *PanicError) Is(target error) bool {
	return target == ErrWorkerPanic
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}

// Value returns the value passed to panic.
func (e *PanicError) Value() any {
	return e.v
}

// invoke runs fn for a single item and always returns a result for it.
// ctx must already carry the worker's logger. The item's lifecycle is sent to the
// progress reporter carried by ctx, if any.
func invoke[I, O any](ctx context.Context, item WorkItem[I], fn WorkerFunc[I, O], worker string) (res *Result[I, O]) {
	rep := progress.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		ctxlog.Debug(ctx, "context done, item not started", "index", item.Index, "error", err)
		rep.Report(progress.Event{
			Index: item.Index, Worker: worker, Type: progress.EventSkipped, Err: err, Timestamp: time.Now(),
		})

		return failure[I, O](item, err, worker, 0)
	}

	start := time.Now()
	rep.Report(progress.Event{Index: item.Index, Worker: worker, Type: progress.EventStarted, Timestamp: start})

	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "worker panicked", "index", item.Index, "input", item.Input, "panic", r)
			res = failure[I, O](item, NewPanicError(r), worker, time.Since(start))
		}

		ev := progress.Event{
			Index: item.Index, Worker: worker, Type: progress.EventCompleted, Elapsed: res.Elapsed, Timestamp: time.Now(),
		}
		if res.Error != nil {
			ev.Type, ev.Err = progress.EventFailed, res.Error
		}

		rep.Report(ev)
	}()

	v, err := fn(ctx, item.Input)
	if err != nil {
		return failure[I, O](item, err, worker, time.Since(start))
	}

	return success(item, v, worker, time.Since(start))
}
