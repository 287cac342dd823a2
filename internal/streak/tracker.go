// Package streak tracks a consecutive-edit streak: a counter that grows by
// one per qualifying edit and resets to zero after a fixed quiet window.
package streak

import (
	"sync"
	"time"

	"codepad/internal/logging"
	"codepad/internal/ratelimit"
)

// DefaultInactivityWindow is the quiet period after which a streak resets.
const DefaultInactivityWindow = 10 * time.Second

// DefaultMilestoneInterval is how many increments separate exclamations.
const DefaultMilestoneInterval = 10

// EventKind identifies an asynchronous tracker event.
type EventKind int

const (
	// EventReset fires when the inactivity window elapses or an explicit
	// reset request lands while the streak is active.
	EventReset EventKind = iota
)

// Event is delivered on the tracker's event channel.
type Event struct {
	Kind EventKind
}

// Tracker is a two-state machine: Idle (count 0) and Active (count > 0).
// Edits increment the count and re-arm a debounced inactivity reset; as long
// as edits arrive faster than the window, the reset never fires.
type Tracker struct {
	mu             sync.Mutex
	count          int
	window         time.Duration
	milestoneEvery int

	reset   *ratelimit.Debouncer
	sampler *Sampler
	events  chan Event
}

// NewTracker creates a tracker with the given inactivity window and
// exclamation sampler. Milestones fire every DefaultMilestoneInterval edits.
func NewTracker(window time.Duration, sampler *Sampler) *Tracker {
	return &Tracker{
		window:         window,
		milestoneEvery: DefaultMilestoneInterval,
		reset:          ratelimit.NewDebouncer(window),
		sampler:        sampler,
		events:         make(chan Event, 8),
	}
}

// SetMilestoneInterval changes how many edits separate exclamations.
// Values below one are ignored.
func (t *Tracker) SetMilestoneInterval(n int) {
	if n < 1 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.milestoneEvery = n
}

// RecordEdit registers one qualifying edit. It returns the new count and,
// on every milestone (count divisible by the interval), an exclamation token
// sampled from the fixed set; otherwise the token is empty.
//
// Each call re-arms the inactivity reset, cancelling any pending one, so
// only the most recent edit's scheduled reset survives.
func (t *Tracker) RecordEdit() (count int, exclaim string) {
	t.mu.Lock()
	t.count++
	count = t.count
	if count%t.milestoneEvery == 0 {
		exclaim = t.sampler.Sample()
	}
	t.mu.Unlock()

	if exclaim != "" {
		logging.Get(logging.CategoryStreak).Debugw("milestone reached", "count", count, "exclaim", exclaim)
	}
	t.reset.Debounce(t.resetNow)
	return count, exclaim
}

// Reset collapses the streak immediately, cancelling any pending
// inactivity reset. A reset while idle is a no-op.
func (t *Tracker) Reset() {
	t.reset.Cancel()
	t.resetNow()
}

// resetNow moves the tracker to Idle and emits a reset event. The event
// send never blocks; if the consumer lags, the reset is still applied.
func (t *Tracker) resetNow() {
	t.mu.Lock()
	wasActive := t.count > 0
	t.count = 0
	t.mu.Unlock()

	if !wasActive {
		return
	}
	logging.Get(logging.CategoryStreak).Debugw("streak reset")
	select {
	case t.events <- Event{Kind: EventReset}:
	default:
	}
}

// Count returns the current streak count.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Window returns the inactivity window.
func (t *Tracker) Window() time.Duration {
	return t.window
}

// Events returns the channel carrying asynchronous reset events.
func (t *Tracker) Events() <-chan Event {
	return t.events
}

// Stop cancels the pending inactivity reset. The tracker keeps its count;
// callers that want a clean shutdown should not rely on further events.
func (t *Tracker) Stop() {
	t.reset.Cancel()
}
