// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

// WorkItem is one input paired with its position in the batch.
type WorkItem[I any] struct {
	Index int // Position of the input in the original slice
	Input I   // The input itself
}

// Enumerate wraps each input in a WorkItem carrying its index.
func Enumerate[I any](inputs []I) []WorkItem[I] {
	items := make([]WorkItem[I], len(inputs))
	for i, in := range inputs {
		items[i] = WorkItem[I]{Index: i, Input: in}
	}

	return items
}
