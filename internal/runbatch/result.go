// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ResultStatus is the outcome of processing one input.
type ResultStatus int

const (
	// ResultStatusSuccess means the worker returned a value.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusError means the worker returned an error, panicked, or never ran because the context was done.
	ResultStatusError
)

// String implements fmt.Stringer.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "Success"
	case ResultStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Result represents the outcome of running the worker against one input.
type Result[I, O any] struct {
	Index   int           // Index of the input in the batch
	Input   I             // The input
	Value   O             // Value returned by the worker, zero on error
	Error   error         // Error, if any
	Status  ResultStatus  // Success or error
	Worker  string        // Name of the worker that produced the result
	Elapsed time.Duration // Time spent in the worker function
}

// Results holds one result per input, indexed by WorkItem.Index.
type Results[I, O any] []*Result[I, O]

// HasError reports whether any result is a failure.
func (r Results[I, O]) HasError() bool {
	return slices.ContainsFunc(r, func(res *Result[I, O]) bool {
		return res == nil || res.Status == ResultStatusError
	})
}

// Failed returns the failed results, in input order.
func (r Results[I, O]) Failed() Results[I, O] {
	var failed Results[I, O]

	for _, res := range r {
		if res != nil && res.Status == ResultStatusError {
			failed = append(failed, res)
		}
	}

	return failed
}

// Values returns the value of every result in input order.
// Failed results contribute the zero value of O.
func (r Results[I, O]) Values() []O {
	values := make([]O, len(r))

	for i, res := range r {
		if res != nil {
			values[i] = res.Value
		}
	}

	return values
}

// Err returns a *multierror.Error describing every failed result, or nil if all succeeded.
// Each wrapped error names the index and input of the failed item and unwraps to the worker's error.
func (r Results[I, O]) Err() error {
	var merr *multierror.Error

	for _, res := range r.Failed() {
		merr = multierror.Append(merr, fmt.Errorf("item %d (%v): %w", res.Index, res.Input, res.Error))
	}

	return merr.ErrorOrNil()
}

func success[I, O any](item WorkItem[I], v O, worker string, elapsed time.Duration) *Result[I, O] {
	return &Result[I, O]{
		Index:   item.Index,
		Input:   item.Input,
		Value:   v,
		Status:  ResultStatusSuccess,
		Worker:  worker,
		Elapsed: elapsed,
	}
}

func failure[I, O any](item WorkItem[I], err error, worker string, elapsed time.Duration) *Result[I, O] {
	return &Result[I, O]{
		Index:   item.Index,
		Input:   item.Input,
		Error:   err,
		Status:  ResultStatusError,
		Worker:  worker,
		Elapsed: elapsed,
	}
}
