package headlines

import (
	"sync"
	"time"
)

// debouncer collapses bursts of values into a single delayed apply call
// carrying the last value. A new value cancels and reschedules the pending
// delay.
type debouncer struct {
	clock Clock
	delay time.Duration
	apply func(string)

	mu      sync.Mutex
	timer   Timer
	pending string
	gen     uint64
}

func newDebouncer(clock Clock, delay time.Duration, apply func(string)) *debouncer {
	return &debouncer{
		clock: clock,
		delay: delay,
		apply: apply,
	}
}

// Push replaces the pending value and restarts the quiet window.
func (d *debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = value
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending value, if any.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a value is waiting for its quiet window to elapse.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	// Superseded by a later Push or a Cancel
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.mu.Unlock()

	d.apply(value)
}
