// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries per-item events from running batches to listeners such as
// progress bars. Workers never block on a slow listener: events that do not fit in the
// reporter's buffer are dropped.
package progress
