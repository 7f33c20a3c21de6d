// Package clock abstracts time so settle waits and debounce windows can be
// driven by a virtual clock in tests.
package clock

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Clock is the time source used by the injector and the scan scheduler.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
	// AfterFunc calls fn in its own goroutine (real clock) or inline during
	// Advance (virtual clock) once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call; it reports whether the call was still pending.
	Stop() bool
}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Virtual is a manually advanced clock. Sleep advances it instantly, so code
// that waits in a loop runs without wall-clock delay.
//
// Callbacks never run re-entrantly. A Sleep or Advance made while a callback
// is running only moves time; timers that fall due meanwhile fire from the
// outer Advance once the running callback returns. A scan started by a
// scheduler timer can therefore wait on the same clock without firing the
// next scan inside itself.
type Virtual struct {
	mu        sync.Mutex
	now       time.Time
	seq       int
	pending   []*virtualTimer
	advancing bool
}

// NewVirtual returns a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

type virtualTimer struct {
	c       *Virtual
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *virtualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the virtual time.
func (c *Virtual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d.
func (c *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

// AfterFunc schedules fn at now+d.
func (c *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &virtualTimer{c: c, at: c.now.Add(d), seq: c.seq, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward by d, running due callbacks in deadline order.
// Callbacks may schedule further timers; those fire too if they fall due
// within the same advance.
func (c *Virtual) Advance(d time.Duration) {
	c.mu.Lock()
	if c.advancing {
		c.now = c.now.Add(d)
		c.mu.Unlock()
		return
	}
	c.advancing = true
	target := c.now.Add(d)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.advancing = false
		c.mu.Unlock()
	}()

	for {
		c.mu.Lock()
		if c.now.After(target) {
			target = c.now
		}
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of scheduled, unfired, unstopped timers.
func (c *Virtual) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *Virtual) nextDue(target time.Time) *virtualTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	c.pending = live
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at.Equal(c.pending[j].at) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at.Before(c.pending[j].at)
	})
	if len(c.pending) == 0 || c.pending[0].at.After(target) {
		return nil
	}
	return c.pending[0]
}
