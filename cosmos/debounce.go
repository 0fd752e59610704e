package cosmos

import "time"

// DefaultMinGap is the stock debounce window between accepted clicks.
const DefaultMinGap = 300 * time.Millisecond

// Debouncer rejects activation events that arrive within MinGap of the last
// accepted one. The first event is always accepted.
type Debouncer struct {
	MinGap time.Duration

	last     time.Duration
	accepted bool
}

// NewDebouncer returns a gate with the given gap. A zero or negative gap
// accepts every event.
func NewDebouncer(gap time.Duration) *Debouncer {
	if gap < 0 {
		gap = 0
	}
	return &Debouncer{MinGap: gap}
}

// ShouldAccept reports whether an event at the given time passes the gate.
func (d *Debouncer) ShouldAccept(at time.Duration) bool {
	if d.accepted && at-d.last < d.MinGap {
		return false
	}
	d.last = at
	d.accepted = true
	return true
}
