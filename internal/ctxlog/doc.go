// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger that can be used to log messages.
// It uses the slog package for structured logging and supports different log levels.
//
// The process logger is built once by Init and then carried in a context.Context, so components
// receive it from their caller rather than from a package global. The level is set from the
// environment variable derived from the executable name: for "filesorter" it is
// FILESORTER_LOG_LEVEL, accepting DEBUG, INFO, WARN or ERROR.
//
// The default is a pretty console handler to format the log messages in a human-readable way.
package ctxlog
