// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"time"
)

// Event is an update about a single work item.
type Event struct {
	Index     int           // Index of the work item in its batch
	Worker    string        // Name of the worker handling the item
	Type      EventType     // What happened
	Err       error         // Set for EventFailed and EventSkipped
	Elapsed   time.Duration // Time spent in the worker, set for EventCompleted and EventFailed
	Timestamp time.Time     // When the event occurred
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a worker has picked up the item.
	EventStarted EventType = iota
	// EventCompleted indicates the worker returned a value.
	EventCompleted
	// EventFailed indicates the worker returned an error or panicked.
	EventFailed
	// EventSkipped indicates the item never ran because the context was done.
	EventSkipped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Done reports whether the event is the last one for its item.
func (et EventType) Done() bool {
	return et == EventCompleted || et == EventFailed || et == EventSkipped
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends an event. It must not block.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives progress events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report does nothing.
func (NullReporter) Report(Event) {}

// Close does nothing.
func (NullReporter) Close() {}

type reporterKey struct{}

// WithReporter returns a context carrying r.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, r)
}

// FromContext returns the reporter carried by ctx, or a NullReporter.
func FromContext(ctx context.Context) Reporter {
	if r, ok := ctx.Value(reporterKey{}).(Reporter); ok && r != nil {
		return r
	}

	return NullReporter{}
}
