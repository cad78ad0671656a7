// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a worker function against every element of an input slice and returns
// one Result per input, in input order, regardless of the order in which work completes.
//
// Inputs can be run serially (SerialBatch, RunSerial) or through a bounded Pool (ParallelBatch, RunParallel).
// Two pools are provided: IsolatedPool, whose workers only exchange messages with the caller and suits
// CPU-bound work, and ConcurrentPool, whose workers share the result table and suits I/O-bound work.
// NewPool picks one from a Workload.
//
// A failing input never stops the batch. Errors returned by the worker, and panics recovered from it,
// are recorded against the index of the input that caused them.
package runbatch
