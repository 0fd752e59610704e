package cosmos

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTransitionDuration is the stock camera transition length.
const DefaultTransitionDuration = 1200 * time.Millisecond

// parkedEpsilon is how close the camera must be to a plan to count as parked on it.
const parkedEpsilon = 1e-6

// Transition is the single in-flight camera interpolation.
type Transition struct {
	id   uint64
	plan CameraPlan

	fromPos  r3.Vec
	fromLook r3.Vec

	elapsed  time.Duration
	duration time.Duration

	cancelled bool
	done      bool

	onComplete func(CameraPlan)
}

// ID is a per-sequencer sequence number, starting at 1.
func (t *Transition) ID() uint64 { return t.id }

// Plan is the target of the transition.
func (t *Transition) Plan() CameraPlan { return t.plan }

// Live reports whether the transition is still driving the camera.
func (t *Transition) Live() bool { return t != nil && !t.cancelled && !t.done }

// Cancelled reports whether the transition was superseded.
func (t *Transition) Cancelled() bool { return t.cancelled }

// Done reports whether the transition ran to completion.
func (t *Transition) Done() bool { return t.done }

// Progress returns linear progress in [0,1].
func (t *Transition) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.duration)
	if p > 1 {
		return 1
	}
	return p
}

// OnComplete registers fn to run once on natural completion. It never runs
// for a cancelled transition.
func (t *Transition) OnComplete(fn func(CameraPlan)) { t.onComplete = fn }

// Cancel stops the transition. It is idempotent and leaves camera and
// controls untouched.
func (t *Transition) Cancel() {
	if t == nil || t.done {
		return
	}
	t.cancelled = true
	t.onComplete = nil
}

// Sequencer owns the camera pose and the controls' enable flag and
// guarantees at most one live Transition.
type Sequencer struct {
	cam      Camera
	controls Controls
	duration time.Duration
	ease     Easing
	log      Logger

	active *Transition
	seq    uint64
}

// NewSequencer wires a sequencer to the host camera and controls.
func NewSequencer(cam Camera, controls Controls, duration time.Duration, ease Easing, log Logger) *Sequencer {
	if duration <= 0 {
		duration = DefaultTransitionDuration
	}
	if ease == nil {
		ease = CubicInOut
	}
	return &Sequencer{
		cam:      cam,
		controls: controls,
		duration: duration,
		ease:     ease,
		log:      orNop(log),
	}
}

// Duration is the fixed transition length.
func (s *Sequencer) Duration() time.Duration { return s.duration }

// Active returns the live transition or nil.
func (s *Sequencer) Active() *Transition { return s.active }

// Busy reports whether a transition is in flight.
func (s *Sequencer) Busy() bool { return s.active.Live() }

// TransitionTo supersedes any live transition with one towards plan,
// starting from the current camera pose. It returns nil when the camera
// is already parked on plan.
func (s *Sequencer) TransitionTo(plan CameraPlan) *Transition {
	if !finiteVec(plan.CameraTarget) || !finiteVec(plan.LookTarget) {
		s.log.WriteLineString("cosmos: rejected non-finite camera plan")
		return nil
	}
	if s.active != nil {
		s.active.Cancel()
		s.active = nil
	}
	s.controls.SetEnabled(false)

	fromPos := s.cam.Position()
	fromLook := s.controls.Target()
	if nearVec(fromPos, plan.CameraTarget, parkedEpsilon) && nearVec(fromLook, plan.LookTarget, parkedEpsilon) {
		s.controls.SetEnabled(true)
		return nil
	}

	s.seq++
	s.active = &Transition{
		id:       s.seq,
		plan:     plan,
		fromPos:  fromPos,
		fromLook: fromLook,
		duration: s.duration,
	}
	return s.active
}

// Advance steps the live transition by dt and writes the interpolated pose.
func (s *Sequencer) Advance(dt time.Duration) {
	t := s.active
	if !t.Live() {
		s.active = nil
		return
	}
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed < t.duration {
		k := s.ease(t.Progress())
		s.cam.SetPosition(lerpVec(t.fromPos, t.plan.CameraTarget, k))
		s.controls.SetTarget(lerpVec(t.fromLook, t.plan.LookTarget, k))
		return
	}

	s.cam.SetPosition(t.plan.CameraTarget)
	s.controls.SetTarget(t.plan.LookTarget)
	t.done = true
	s.active = nil
	s.controls.SetEnabled(true)
	if fn := t.onComplete; fn != nil {
		t.onComplete = nil
		fn(t.plan)
	}
}

// Park cancels any live transition and places the camera on plan at once.
func (s *Sequencer) Park(plan CameraPlan) {
	if s.active != nil {
		s.active.Cancel()
		s.active = nil
	}
	s.cam.SetPosition(plan.CameraTarget)
	s.controls.SetTarget(plan.LookTarget)
	s.controls.SetEnabled(true)
}
