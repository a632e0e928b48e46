package reactive

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled function once input has been
// quiet for the scheduled delay.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Schedule replaces any pending call with fn, to run after delay.
func (d *Debouncer) Schedule(fn func(), delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.fn = fn
	d.timer = time.AfterFunc(delay, func() {
		d.fire(gen)
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether a call is scheduled and has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// Flush runs the pending call immediately on the calling goroutine.
// It returns false when nothing was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.fn
	d.stopLocked()
	d.gen++
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer that lost the race against Schedule/Cancel must not run.
	if gen != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}
