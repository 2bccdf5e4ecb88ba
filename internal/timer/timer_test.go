package timer

import (
	"sync"
	"testing"
	"time"
)

// newManual returns a started countdown whose real ticker effectively never
// fires, so tests drive it by calling tick directly.
func newManual(seconds int, onExpire func()) *Countdown {
	c := NewWithInterval(seconds, time.Hour, onExpire)
	c.Start()
	return c
}

func TestTickToZero_FiresExpiryOnce(t *testing.T) {
	fired := 0
	c := newManual(5, func() { fired++ })

	for i := 0; i < 5; i++ {
		c.tick()
	}

	if got := c.Remaining(); got != 0 {
		t.Errorf("expected 0 remaining after 5 ticks, got %d", got)
	}
	if fired != 1 {
		t.Errorf("expected expiry to fire exactly once, fired %d times", fired)
	}
	if c.Running() {
		t.Error("expected countdown to stop running at zero")
	}

	// Further ticks after expiry must never re-fire.
	c.tick()
	c.tick()
	if fired != 1 {
		t.Errorf("expected no re-fire after expiry, fired %d times", fired)
	}
}

func TestStop_CancelsFutureTicks(t *testing.T) {
	fired := 0
	c := newManual(3, func() { fired++ })

	c.tick()
	c.Stop()

	if got := c.Remaining(); got != 2 {
		t.Errorf("expected 2 remaining, got %d", got)
	}

	c.tick()
	if got := c.Remaining(); got != 2 {
		t.Errorf("expected remaining frozen after Stop, got %d", got)
	}
	if fired != 0 {
		t.Errorf("expected no expiry after Stop, fired %d times", fired)
	}
}

func TestStop_Idempotent(t *testing.T) {
	c := newManual(10, nil)
	c.Stop()
	c.Stop()
	c.Stop()

	if c.Running() {
		t.Error("expected countdown stopped")
	}
}

func TestStart_AfterStopIsNoOp(t *testing.T) {
	c := NewWithInterval(10, time.Hour, nil)
	c.Stop()
	c.Start()

	if c.Running() {
		t.Error("expected Start after Stop to be a no-op")
	}
}

func TestZeroSecondCountdown_ExpiresOnFirstTick(t *testing.T) {
	fired := 0
	c := newManual(0, func() { fired++ })

	c.tick()
	if fired != 1 {
		t.Errorf("expected expiry on first tick of a zero countdown, fired %d", fired)
	}
}

func TestUrgent(t *testing.T) {
	c := newManual(UrgencyThreshold, nil)
	if c.Urgent() {
		t.Error("expected not urgent at exactly the threshold")
	}
	c.tick()
	if !c.Urgent() {
		t.Error("expected urgent below the threshold")
	}
}

func TestRealTicker_ExpiresAndFiresOnce(t *testing.T) {
	var mu sync.Mutex
	fired := 0

	c := NewWithInterval(3, time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	c.Start()
	defer c.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := fired > 0
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Fatalf("expected exactly one expiry, got %d", fired)
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("expected 0 remaining, got %d", got)
	}
}
