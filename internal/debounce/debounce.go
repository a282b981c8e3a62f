// Package debounce collapses bursts of triggers into a single trailing
// action with at most one execution in flight.
//
// The state machine is idle → pending → in-flight. A trigger while pending
// restarts the delay; a delay elapsing while the action is still running
// defers the next run until the current one completes, so runs never
// overlap and the last trigger always eventually wins.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a single action on the trailing edge of a trigger
// burst. The action runs on its own goroutine.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	action   func()
	timer    *time.Timer
	inFlight bool
	deferred bool
}

// New builds a Debouncer that waits delay after the last Trigger before
// running action.
func New(delay time.Duration, action func()) *Debouncer {
	return &Debouncer{delay: delay, action: action}
}

// Trigger (re)starts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.arm()
}

// arm must be called with the mutex held.
func (d *Debouncer) arm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.inFlight {
		// A run is still executing; remember to go again when it ends
		// instead of overlapping.
		d.deferred = true
		d.mu.Unlock()
		return
	}
	d.inFlight = true
	d.mu.Unlock()

	go func() {
		d.action()

		d.mu.Lock()
		d.inFlight = false
		if d.deferred {
			d.deferred = false
			d.arm()
		}
		d.mu.Unlock()
	}()
}
