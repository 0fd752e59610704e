package cosmos

import "time"

// DefaultIdleSpeed is the stock idle rotation in radians per second.
const DefaultIdleSpeed = 0.05

// Group is the transform shared by every panel.
type Group struct {
	Yaw float64
}

// IdleRotation slowly spins the group while nothing is focused and no
// transition is in flight.
type IdleRotation struct {
	Speed float64

	group *Group
	focus *FocusController
	seq   *Sequencer
}

// NewIdleRotation binds the scheduler to the group it rotates and the state it
// checks every tick.
func NewIdleRotation(speed float64, group *Group, focus *FocusController, seq *Sequencer) *IdleRotation {
	return &IdleRotation{Speed: speed, group: group, focus: focus, seq: seq}
}

// Tick applies one frame of rotation and returns the yaw delta applied.
func (r *IdleRotation) Tick(dt time.Duration) float64 {
	if r.group == nil || dt <= 0 {
		return 0
	}
	if r.focus != nil && r.focus.State().Focused() {
		return 0
	}
	if r.seq != nil && r.seq.Busy() {
		return 0
	}
	delta := r.Speed * dt.Seconds()
	r.group.Yaw += delta
	return delta
}
