// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns termination signals into context cancellation.
// By default it listens for SIGINT, SIGTERM and SIGQUIT.
//
// The first signal of a kind is logged and ignored so that in-flight work can finish;
// the second signal of the same kind cancels the context, which stops the batch
// from handing out further work items.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel registered for the given signals, or the termination signals if none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Listen registers for the termination signals and watches them in the background.
// The returned function unregisters the channel and stops the watcher.
func Listen(ctx context.Context, cancel context.CancelFunc) func() {
	ch := New(ctx)
	watchCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(watchCtx, ch, cancel)
	}()

	return func() {
		signal.Stop(ch)
		stop()
		<-done
	}
}
