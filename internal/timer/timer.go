package timer

import (
	"sync"
	"time"
)

// UrgencyThreshold is the remaining-seconds boundary under which clients
// should render the countdown in its urgent style.
const UrgencyThreshold = 300

// Countdown decrements once per tick interval and fires its expiry callback
// exactly once when the remaining time reaches zero. Stop is safe to call
// from any exit path, any number of times.
type Countdown struct {
	interval time.Duration
	onExpire func()

	mu        sync.Mutex
	remaining int
	running   bool
	expired   bool

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a countdown ticking once per wall-clock second.
func New(seconds int, onExpire func()) *Countdown {
	return NewWithInterval(seconds, time.Second, onExpire)
}

// NewWithInterval creates a countdown with a custom tick interval. Tests use
// short intervals to exercise expiry without waiting out real seconds.
func NewWithInterval(seconds int, interval time.Duration, onExpire func()) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		interval:  interval,
		onExpire:  onExpire,
		remaining: seconds,
		stop:      make(chan struct{}),
	}
}

// Start launches the tick loop. Calling Start on a running or stopped
// countdown is a no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running || c.expired {
		c.mu.Unlock()
		return
	}
	select {
	case <-c.stop:
		c.mu.Unlock()
		return
	default:
	}
	c.running = true
	c.mu.Unlock()

	go c.run()
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if c.tick() {
				return
			}
		}
	}
}

// tick performs one decrement. It returns true once the countdown is
// finished, firing the expiry callback on the tick that reaches zero.
func (c *Countdown) tick() bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return true
	}
	if c.remaining > 0 {
		c.remaining--
	}
	done := c.remaining == 0
	fire := false
	if done {
		c.running = false
		if !c.expired {
			c.expired = true
			fire = true
		}
	}
	c.mu.Unlock()

	if fire && c.onExpire != nil {
		c.onExpire()
	}
	return done
}

// Stop cancels future ticks. Idempotent.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Urgent reports whether the remaining time is under the urgency threshold.
func (c *Countdown) Urgent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining < UrgencyThreshold
}
