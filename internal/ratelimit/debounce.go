// Package ratelimit provides debounce and throttle primitives for
// coordinating how often timer-driven callbacks fire.
package ratelimit

import (
	"sync"
	"time"
)

// Debouncer delays a callback until a quiet period has elapsed.
// Rapid successive calls reset the timer, so within any burst only the
// last scheduled callback fires, one wait after the last call.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	wait  time.Duration
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Debounce schedules fn to run after the quiet period. Any previously
// scheduled callback is cancelled; the latest callback wins.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Cancel stops any pending scheduled callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate cancels any pending callback and runs fn now.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

// Wait returns the configured quiet period.
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}
