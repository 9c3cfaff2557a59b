package headlines

import (
	"sync"
	"time"
)

// recurring calls fn every interval until stopped. Each instance is a single
// auto-refresh handle; once stopped it never fires again.
type recurring struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   Timer
	stopped bool
}

func startRecurring(clock Clock, interval time.Duration, fn func()) *recurring {
	r := &recurring{
		clock:    clock,
		interval: interval,
		fn:       fn,
	}

	r.mu.Lock()
	r.schedule()
	r.mu.Unlock()

	return r
}

// schedule must be called with r.mu held.
func (r *recurring) schedule() {
	r.timer = r.clock.AfterFunc(r.interval, r.tick)
}

func (r *recurring) tick() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.schedule()
	r.mu.Unlock()

	r.fn()
}

// Stop releases the handle.
func (r *recurring) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
