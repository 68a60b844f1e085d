package util

import (
	"sync"
	"time"
)

// Countdown is a ticking counter that calls a per-run callback exactly once
// when it reaches zero. At most one run is active: Start cancels any run
// already in flight before beginning a fresh one, so callers never end up
// with duplicate tickers.
type Countdown struct {
	mu        sync.Mutex
	interval  time.Duration
	remaining int
	stop      chan struct{}
}

// NewCountdown builds an idle countdown that decrements once per interval.
func NewCountdown(interval time.Duration) *Countdown {
	return &Countdown{interval: interval}
}

// Start begins a run from the given number of seconds, cancelling any run
// already in flight. onExpire belongs to this run only; a cancelled run never
// fires it. It runs on the countdown's goroutine with no internal locks held.
func (c *Countdown) Start(seconds int, onExpire func()) {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
	}
	stop := make(chan struct{})
	c.stop = stop
	c.remaining = seconds
	c.mu.Unlock()

	go c.run(stop, onExpire)
}

// Stop cancels the active run, if any. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.remaining = 0
}

// Remaining returns the current counter value; zero when idle or expired.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) run(stop chan struct{}, onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stop != stop {
				// A newer run replaced this one between the tick and the lock.
				c.mu.Unlock()
				return
			}
			c.remaining--
			expired := c.remaining <= 0
			if expired {
				c.remaining = 0
				c.stop = nil
			}
			c.mu.Unlock()

			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}
