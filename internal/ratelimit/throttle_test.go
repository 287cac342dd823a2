package ratelimit

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestThrottler_LeadingFire(t *testing.T) {
	var called int32
	th := NewThrottler(50 * time.Millisecond)

	th.Throttle(func() { atomic.AddInt32(&called, 1) })

	// The first call of a burst fires immediately
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected immediate leading call, got %d", called)
	}
	th.Cancel()
}

func TestThrottler_BurstFiresTwice(t *testing.T) {
	var called int32
	var lastValue int32
	th := NewThrottler(100 * time.Millisecond)

	// Burst of calls spaced well under the window, finishing before the
	// trailing call lands at window-end.
	for i := 1; i <= 6; i++ {
		value := int32(i)
		th.Throttle(func() {
			atomic.AddInt32(&called, 1)
			atomic.StoreInt32(&lastValue, value)
		})
		time.Sleep(10 * time.Millisecond)
	}

	// Wait for the trailing call
	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 2 {
		t.Errorf("Expected exactly 2 calls (leading + trailing), got %d", got)
	}

	// The trailing call carries the latest suppressed callback
	if got := atomic.LoadInt32(&lastValue); got != 6 {
		t.Errorf("Expected trailing call with value 6, got %d", got)
	}
}

func TestThrottler_TrailingDisabled(t *testing.T) {
	var called int32
	th := NewThrottler(60 * time.Millisecond)
	th.SetTrailing(false)

	for i := 0; i < 8; i++ {
		th.Throttle(func() { atomic.AddInt32(&called, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Errorf("Expected only the leading call, got %d", got)
	}
}

func TestThrottler_WindowElapsedFiresAgain(t *testing.T) {
	var called int32
	th := NewThrottler(30 * time.Millisecond)

	th.Throttle(func() { atomic.AddInt32(&called, 1) })
	time.Sleep(60 * time.Millisecond)
	th.Throttle(func() { atomic.AddInt32(&called, 1) })

	if got := atomic.LoadInt32(&called); got != 2 {
		t.Errorf("Expected 2 leading calls across separate windows, got %d", got)
	}
	th.Cancel()
}

func TestThrottler_ClockAnomalyFiresImmediately(t *testing.T) {
	var called int32
	th := NewThrottler(50 * time.Millisecond)

	// Simulate the clock jumping backwards between calls: remaining
	// exceeds the window, which must be treated as a leading fire.
	base := time.Now()
	th.now = func() time.Time { return base }
	th.Throttle(func() { atomic.AddInt32(&called, 1) })

	th.now = func() time.Time { return base.Add(-time.Second) }
	th.Throttle(func() { atomic.AddInt32(&called, 1) })

	if got := atomic.LoadInt32(&called); got != 2 {
		t.Errorf("Expected immediate fire on clock anomaly, got %d", got)
	}
	th.Cancel()
}

func TestThrottler_Cancel(t *testing.T) {
	var called int32
	th := NewThrottler(50 * time.Millisecond)

	th.Throttle(func() { atomic.AddInt32(&called, 1) })
	th.Throttle(func() { atomic.AddInt32(&called, 1) }) // suppressed, pending trailing
	th.Cancel()

	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Errorf("Expected trailing call to be cancelled, got %d calls", got)
	}
}
