package main

import "time"

// IntervalTimer is a cooperative recurring callback polled from the event
// loop. It never runs on its own goroutine; Tick must be called each frame.
type IntervalTimer struct {
	interval time.Duration
	next     time.Time
	active   bool
	fn       func()
}

// NewIntervalTimer creates a stopped timer that runs fn every interval.
func NewIntervalTimer(interval time.Duration, fn func()) *IntervalTimer {
	return &IntervalTimer{interval: interval, fn: fn}
}

// Start schedules the first run one interval after now. Starting an active
// timer reschedules it.
func (t *IntervalTimer) Start(now time.Time) {
	t.active = true
	t.next = now.Add(t.interval)
}

// Stop cancels pending runs.
func (t *IntervalTimer) Stop() {
	t.active = false
}

// Active reports whether the timer is scheduled.
func (t *IntervalTimer) Active() bool {
	return t.active
}

// Tick runs the callback if it is due and reports whether it ran.
func (t *IntervalTimer) Tick(now time.Time) bool {
	if !t.active || now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	t.fn()
	return true
}
