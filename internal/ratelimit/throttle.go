package ratelimit

import (
	"sync"
	"time"
)

// Throttler caps invocation rate to at most one call per window, firing on
// the leading edge of a burst. When trailing is enabled, one more call fires
// at window-end carrying the latest suppressed callback.
//
// Within any burst of calls spaced closer than the window, at most two
// callbacks run: the leading one and, with trailing enabled, the trailing one.
type Throttler struct {
	mu       sync.Mutex
	wait     time.Duration
	trailing bool

	previous time.Time   // last leading fire; zero when unset
	timer    *time.Timer // pending trailing call
	pending  func()      // callback carried by the trailing call

	now func() time.Time // clock, swappable in tests
}

// NewThrottler creates a throttler for the given window. Trailing calls are
// enabled; use SetTrailing(false) for leading-edge-only behavior.
func NewThrottler(wait time.Duration) *Throttler {
	return &Throttler{wait: wait, trailing: true, now: time.Now}
}

// SetTrailing enables or disables the trailing window-end call.
func (t *Throttler) SetTrailing(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trailing = enabled
}

// Throttle runs fn immediately if the window has elapsed since the previous
// fire (or the previous fire is unset, including after a clock anomaly).
// Otherwise, with trailing enabled, fn is retained and fires once at
// window-end; repeated suppressed calls replace the retained callback so the
// latest one wins.
func (t *Throttler) Throttle(fn func()) {
	t.mu.Lock()

	now := t.now()
	var remaining time.Duration
	if t.previous.IsZero() {
		remaining = 0
	} else {
		remaining = t.wait - now.Sub(t.previous)
	}

	if remaining <= 0 || remaining > t.wait {
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
			t.pending = nil
		}
		t.previous = now
		t.mu.Unlock()
		fn()
		return
	}

	if !t.trailing {
		t.mu.Unlock()
		return
	}

	t.pending = fn
	if t.timer == nil {
		t.timer = time.AfterFunc(remaining, t.fireTrailing)
	}
	t.mu.Unlock()
}

// fireTrailing runs the retained callback and re-opens the window.
func (t *Throttler) fireTrailing() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.previous = time.Time{}
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel stops any pending trailing call without firing it.
func (t *Throttler) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
}
