package catalog

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default reload debounce window.
const DefaultDebounceDuration = 250 * time.Millisecond

// debouncer coalesces bursts of file events into one reload. Only the most
// recently scheduled callback runs.
type debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
}

func newDebouncer(d time.Duration) *debouncer {
	if d == 0 {
		d = DefaultDebounceDuration
	}
	return &debouncer{duration: d}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		callback()
	})
}

func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
