package dashboard

import (
	"sync"
	"time"
)

// DefaultDebounce is how long search input must pause before a re-filter.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers into one call. Each Trigger cancels
// the pending timer, so only the latest burst entry fires.
type Debouncer struct {
	Delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Trigger schedules fn after the delay, cancelling any pending schedule.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	delay := d.Delay
	if delay <= 0 {
		delay = DefaultDebounce
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancels any pending trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
