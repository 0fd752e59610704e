package cosmos

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// FocusState is either none or focused on one panel index.
type FocusState struct {
	index   int
	focused bool
}

// NoFocus is the unfocused state.
func NoFocus() FocusState { return FocusState{} }

// FocusedOn is the state with panel i framed.
func FocusedOn(i int) FocusState { return FocusState{index: i, focused: true} }

func (s FocusState) Focused() bool { return s.focused }

// Index returns the focused panel index, ok is false when nothing is focused.
func (s FocusState) Index() (i int, ok bool) { return s.index, s.focused }

func (s FocusState) String() string {
	if !s.focused {
		return "none"
	}
	return fmt.Sprintf("focused(%d)", s.index)
}

// PointerEvent is a click delivered by the host hit-tester.
type PointerEvent struct {
	At         time.Duration
	Index      int
	Background bool
}

// ClickPanel is a click on panel i at time at.
func ClickPanel(i int, at time.Duration) PointerEvent { return PointerEvent{At: at, Index: i} }

// ClickBackground is a click that hit no panel.
func ClickBackground(at time.Duration) PointerEvent {
	return PointerEvent{At: at, Index: -1, Background: true}
}

// PanelSet exposes the geometry of the current panels in world space.
type PanelSet interface {
	Len() int
	PanelGeometry(i int) (w, h float64, pos r3.Vec)
}

// FocusController is the focus state machine. Each state change produces a
// fresh CameraPlan handed to the Sequencer.
type FocusController struct {
	panels PanelSet
	lens   Camera
	seq    *Sequencer
	gate   *Debouncer
	log    Logger

	origin      r3.Vec
	defaultPose Pose

	state FocusState
}

// NewFocusController returns a controller in the none state.
func NewFocusController(panels PanelSet, lens Camera, seq *Sequencer, gate *Debouncer, defaultPose Pose, log Logger) *FocusController {
	if gate == nil {
		gate = NewDebouncer(DefaultMinGap)
	}
	return &FocusController{
		panels:      panels,
		lens:        lens,
		seq:         seq,
		gate:        gate,
		log:         orNop(log),
		defaultPose: defaultPose,
	}
}

// State returns the current focus state.
func (c *FocusController) State() FocusState { return c.state }

// Dimmed reports whether panel i should render faded.
func (c *FocusController) Dimmed(i int) bool {
	return c.state.focused && c.state.index != i
}

// HandleClick gates ev through the debouncer and applies it. It reports
// whether the event was accepted.
func (c *FocusController) HandleClick(ev PointerEvent) bool {
	if !c.gate.ShouldAccept(ev.At) {
		return false
	}
	if ev.Background {
		c.Clear()
	} else {
		c.Select(ev.Index)
	}
	return true
}

// Select focuses panel i, toggles off when i is already focused and treats
// an index outside the panel set as a clear.
func (c *FocusController) Select(i int) FocusState {
	if i < 0 || i >= c.panels.Len() {
		c.log.WriteLineString(fmt.Sprintf("cosmos: select %d out of range (panels=%d); clearing", i, c.panels.Len()))
		c.Clear()
		return c.state
	}
	if c.state.focused && c.state.index == i {
		c.apply(NoFocus())
		return c.state
	}
	c.apply(FocusedOn(i))
	return c.state
}

// Clear returns to the unfocused view. Clearing while unfocused does nothing.
func (c *FocusController) Clear() FocusState {
	if !c.state.focused {
		return c.state
	}
	c.apply(NoFocus())
	return c.state
}

// Revalidate reconciles the focus with a changed panel set: a stale index
// clears focus, a valid one is reframed at its new position.
func (c *FocusController) Revalidate() {
	i, ok := c.state.Index()
	if !ok {
		return
	}
	if i >= c.panels.Len() {
		c.log.WriteLineString(fmt.Sprintf("cosmos: focused panel %d gone (panels=%d); clearing", i, c.panels.Len()))
		c.apply(NoFocus())
		return
	}
	c.apply(FocusedOn(i))
}

// Plan computes the camera plan for state s without applying it.
func (c *FocusController) Plan(s FocusState) CameraPlan {
	i, ok := s.Index()
	if !ok || i >= c.panels.Len() {
		return c.defaultPose.Plan()
	}
	w, h, pos := c.panels.PanelGeometry(i)
	pose, ok := framePanel(w, h, pos, c.lens, c.origin, c.defaultPose)
	if !ok {
		c.log.WriteLineString(fmt.Sprintf("cosmos: panel %d cannot be framed (%.3gx%.3g); using default pose", i, w, h))
	}
	return pose.Plan()
}

func (c *FocusController) apply(s FocusState) {
	c.state = s
	if c.seq == nil {
		return
	}
	c.seq.TransitionTo(c.Plan(s))
}

func framePanel(w, h float64, pos r3.Vec, lens Camera, origin r3.Vec, def Pose) (Pose, bool) {
	if lens == nil {
		return def, false
	}
	vfov, aspect := lens.VerticalFOV(), lens.Aspect()
	if _, ok := FramingDistance(w, h, vfov, aspect); !ok {
		return def, false
	}
	return ComputeFraming(w, h, pos, vfov, aspect, origin, def), true
}
