package headlines

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the timer
	// was still pending.
	Stop() bool
}

// Clock is the time source for the controller's debounce and auto-refresh
// timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is a Clock backed by the time package.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc calls f in its own goroutine after d has elapsed.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
