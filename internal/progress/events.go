// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is an update about one job.
type Event struct {
	Job       string    // Name of the job
	Type      EventType // What happened
	Bytes     int64     // Bytes written to the primary sink, for EventCompleted and EventFailed
	Err       error     // Why the job failed or was skipped
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a job has begun.
	EventStarted EventType = iota
	// EventCompleted indicates successful completion.
	EventCompleted
	// EventFailed indicates the job failed.
	EventFailed
	// EventSkipped indicates the job did not run because the run was cancelled.
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

// NewEvent returns an event stamped with the current time.
func NewEvent(job string, et EventType, bytes int64, err error) Event {
	return Event{
		Job:       job,
		Type:      et,
		Bytes:     bytes,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends an event. It never blocks.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives progress events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(event Event)

// OnEvent calls f(event).
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report does nothing.
func (NullReporter) Report(Event) {}

// Close does nothing.
func (NullReporter) Close() {}
