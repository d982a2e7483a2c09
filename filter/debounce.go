package filter

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid successive preview requests. Each Request
// replaces any pending one; after the quiet interval elapses the most
// recent request runs. The latest parameters therefore always win, which
// is the contract preview filtering requires when a slider is dragged
// faster than filters can run.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	pending func()
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet interval.
// A zero interval runs every request immediately.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Request schedules fn to run after the quiet interval, replacing any
// not-yet-run previous request.
func (d *Debouncer) Request(fn func()) {
	if d.interval == 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending request immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop discards any pending request and rejects future ones.
// Used when a preview is cancelled.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.stopped = true
}
