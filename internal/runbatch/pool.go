// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"runtime"
)

// DefaultIOConcurrency is the pool size used for I/O-bound work when none is given.
const DefaultIOConcurrency = 10

// Workload describes the shape of the work a pool will run.
type Workload int

const (
	// WorkloadCPU is compute-bound work. It gets an IsolatedPool sized to the number of CPUs.
	WorkloadCPU Workload = iota
	// WorkloadIO is work that mostly waits on I/O. It gets a ConcurrentPool of DefaultIOConcurrency workers.
	WorkloadIO
)

// String implements fmt.Stringer.
func (w Workload) String() string {
	switch w {
	case WorkloadCPU:
		return "cpu"
	case WorkloadIO:
		return "io"
	default:
		return "unknown"
	}
}

// Pool is a bounded set of workers.
// Run must return exactly one result per item, stored at the item's index, and must not return
// until every worker it started has exited. Items are expected to come from Enumerate, so that
// their indices cover 0 to len(items)-1.
type Pool[I, O any] interface {
	Run(ctx context.Context, items []WorkItem[I], fn WorkerFunc[I, O]) Results[I, O]
	// Size returns the maximum number of workers.
	Size() int
	// Name returns a short description of the pool implementation.
	Name() string
}

// DefaultConcurrency returns the pool size used for w when no explicit size is given.
func DefaultConcurrency(w Workload) int {
	if w == WorkloadIO {
		return DefaultIOConcurrency
	}

	return runtime.NumCPU()
}

// NewPool returns the pool suited to the workload. A size below 1 selects DefaultConcurrency(w).
func NewPool[I, O any](w Workload, size int) Pool[I, O] {
	if size < 1 {
		size = DefaultConcurrency(w)
	}

	if w == WorkloadIO {
		return NewConcurrentPool[I, O](size)
	}

	return NewIsolatedPool[I, O](size)
}
