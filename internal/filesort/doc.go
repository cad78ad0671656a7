// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package filesort copies the regular files of a directory tree into buckets named after
// their extension.
//
// report.TXT is copied to <dest>/txt/report.TXT, README to <dest>/others/README.
// Files are copied concurrently on a runbatch.ConcurrentPool; a file that cannot be copied
// is recorded as a failed result and does not stop the others.
//
// All filesystem access goes through an afero.Fs so the package can be tested in memory.
package filesort
