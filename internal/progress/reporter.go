// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"sync"
)

// ChannelReporter implements Reporter using a buffered channel.
// Events reported while the buffer is full are dropped.
//
// Delivery does not depend on any context: events reported after a run was
// cancelled, such as EventSkipped, still reach the listener before Close returns.
type ChannelReporter struct {
	ch     chan Event
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer size.
func NewChannelReporter(bufferSize int) *ChannelReporter {
	return &ChannelReporter{
		ch: make(chan Event, bufferSize),
	}
}

// Report implements Reporter.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	default:
	}
}

// Close implements Reporter. It waits until the listener has received every event
// already reported.
func (cr *ChannelReporter) Close() {
	cr.mu.Lock()

	if cr.closed {
		cr.mu.Unlock()
		return
	}

	cr.closed = true
	close(cr.ch)
	cr.mu.Unlock()

	cr.wg.Wait()
}

// Listen forwards events to listener on a new goroutine until the reporter is
// closed and drained.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for event := range cr.ch {
			listener.OnEvent(event)
		}
	}()
}

// Events returns the channel of events, for callers that do not use Listen.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
