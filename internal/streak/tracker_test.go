package streak

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestTracker(window time.Duration) *Tracker {
	return NewTracker(window, DefaultSampler(1))
}

func TestTracker_CountsEdits(t *testing.T) {
	tr := newTestTracker(time.Second)
	defer tr.Stop()

	milestones := 0
	for i := 1; i <= 25; i++ {
		count, exclaim := tr.RecordEdit()
		if count != i {
			t.Fatalf("Expected count %d, got %d", i, count)
		}
		if exclaim != "" {
			milestones++
			if i%DefaultMilestoneInterval != 0 {
				t.Errorf("Unexpected milestone at count %d", i)
			}
		}
	}

	// 25 edits yield floor(25/10) = 2 milestones
	if milestones != 2 {
		t.Errorf("Expected 2 milestones for 25 edits, got %d", milestones)
	}
	if tr.Count() != 25 {
		t.Errorf("Expected final count 25, got %d", tr.Count())
	}
}

func TestTracker_InactivityReset(t *testing.T) {
	tr := newTestTracker(50 * time.Millisecond)
	defer tr.Stop()

	tr.RecordEdit()
	tr.RecordEdit()

	select {
	case ev := <-tr.Events():
		if ev.Kind != EventReset {
			t.Fatalf("Expected reset event, got %v", ev.Kind)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Expected a reset event after the quiet window")
	}

	if tr.Count() != 0 {
		t.Errorf("Expected count 0 after reset, got %d", tr.Count())
	}

	// Exactly one reset: no further events while idle
	select {
	case <-tr.Events():
		t.Error("Unexpected second reset event")
	case <-time.After(120 * time.Millisecond):
	}
}

func TestTracker_EditCancelsPendingReset(t *testing.T) {
	tr := newTestTracker(80 * time.Millisecond)
	defer tr.Stop()

	// Edits spaced just inside the window keep the streak alive
	for i := 0; i < 5; i++ {
		tr.RecordEdit()
		time.Sleep(60 * time.Millisecond)
	}

	select {
	case <-tr.Events():
		t.Fatal("Reset fired even though edits kept arriving inside the window")
	default:
	}

	if tr.Count() != 5 {
		t.Errorf("Expected count 5, got %d", tr.Count())
	}
}

func TestTracker_ExplicitReset(t *testing.T) {
	tr := newTestTracker(time.Second)
	defer tr.Stop()

	tr.RecordEdit()
	tr.RecordEdit()
	tr.Reset()

	if tr.Count() != 0 {
		t.Errorf("Expected count 0 after explicit reset, got %d", tr.Count())
	}

	select {
	case ev := <-tr.Events():
		if ev.Kind != EventReset {
			t.Fatalf("Expected reset event, got %v", ev.Kind)
		}
	default:
		t.Fatal("Expected a reset event from explicit reset")
	}

	// Resetting while idle emits nothing
	tr.Reset()
	select {
	case <-tr.Events():
		t.Error("Idle reset should not emit an event")
	default:
	}
}

func TestSampler_Membership(t *testing.T) {
	s := NewSampler(DefaultExclamations, rand.NewSource(time.Now().UnixNano()))

	members := make(map[string]bool, len(DefaultExclamations))
	for _, tok := range DefaultExclamations {
		members[tok] = true
	}

	for i := 0; i < 100; i++ {
		if got := s.Sample(); !members[got] {
			t.Fatalf("Sample returned %q, not a member of the set", got)
		}
	}
}

func TestSampler_Deterministic(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}

	first := NewSampler(tokens, rand.NewSource(42))
	second := NewSampler(tokens, rand.NewSource(42))

	for i := 0; i < 20; i++ {
		if a, b := first.Sample(), second.Sample(); a != b {
			t.Fatalf("Seeded samplers diverged at draw %d: %q vs %q", i, a, b)
		}
	}
}
