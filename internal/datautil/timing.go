package datautil

import (
	"sync"
	"time"
)

// Debouncer delays execution until delay has passed without another Call.
// Each Call replaces the pending function, so the last invocation's
// arguments win. Stop cancels whatever is pending.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler runs at most one call per interval: the first Call fires
// immediately, calls inside the window collapse into one trailing
// execution carrying the last function passed.
type Throttler struct {
	interval time.Duration

	mu    sync.Mutex
	last  time.Time
	timer *time.Timer
}

func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

func (t *Throttler) Call(fn func()) {
	t.mu.Lock()

	now := time.Now()
	elapsed := now.Sub(t.last)
	if t.last.IsZero() || elapsed >= t.interval {
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.interval-elapsed, func() {
		t.mu.Lock()
		t.last = time.Now()
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
	t.mu.Unlock()
}

func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
