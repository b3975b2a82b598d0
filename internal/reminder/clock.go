package reminder

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Clock supplies the current time and one-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock uses the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FakeClock is deterministic and test-friendly. Timers fire synchronously
// from Advance, in due order.
type FakeClock struct {
	mu     sync.Mutex
	t      time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	when    time.Time
	f       func()
	stopped bool
	fired   bool
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{clock: c, when: c.t.Add(d), f: f}
	c.timers = append(c.timers, ft)
	return ft
}

// Advance moves the clock forward and runs every timer that became due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	now := c.t

	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, ft := range c.timers {
		switch {
		case ft.stopped:
		case !ft.when.After(now):
			ft.fired = true
			due = append(due, ft)
		default:
			remaining = append(remaining, ft)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
	for _, ft := range due {
		ft.f()
	}
}

// Pending returns the number of armed timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ft := range c.timers {
		if !ft.stopped {
			n++
		}
	}
	return n
}

func (ft *fakeTimer) Stop() bool {
	ft.clock.mu.Lock()
	defer ft.clock.mu.Unlock()
	if ft.stopped || ft.fired {
		return false
	}
	ft.stopped = true
	return true
}
