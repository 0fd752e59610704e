package cosmos

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config collects every tunable of the core.
type Config struct {
	Layout LayoutConfig

	// PanelHeight is the world height of every panel; width follows the item aspect.
	PanelHeight float64
	// DefaultDistance places the zoomed-out camera on +Z.
	DefaultDistance float64

	DebounceGap        time.Duration
	TransitionDuration time.Duration
	Easing             Easing

	// IdleSpeed is in radians per second.
	IdleSpeed     float64
	DimmedOpacity float64

	// Seed makes layouts reproducible. Zero jitters from the process-wide source.
	Seed int64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Layout:             DefaultLayoutConfig(),
		PanelHeight:        1.5,
		DefaultDistance:    25,
		DebounceGap:        DefaultMinGap,
		TransitionDuration: DefaultTransitionDuration,
		Easing:             CubicInOut,
		IdleSpeed:          DefaultIdleSpeed,
		DimmedOpacity:      0.2,
	}
}

// Panel is the per-frame render output for one item.
type Panel struct {
	ID          string
	TextureRef  string
	Position    r3.Vec
	Orientation quat.Number
	Rotation    Euler
	Width       float64
	Height      float64
	Dimmed      bool
	Opacity     float64
}

// Scene ties layout, focus, sequencing and idle rotation to one frame clock.
type Scene struct {
	cfg Config
	log Logger
	rng *rand.Rand

	items  []Item
	placed []PlacedItem
	group  Group

	clock   time.Duration
	pending []PointerEvent

	seq   *Sequencer
	focus *FocusController
	idle  *IdleRotation
}

// NewScene parks the camera on the default pose and starts with no items.
func NewScene(cfg Config, cam Camera, controls Controls, log Logger) *Scene {
	s := &Scene{cfg: cfg, log: orNop(log)}
	if cfg.Seed != 0 {
		s.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	def := DefaultPose(cfg.DefaultDistance)
	s.seq = NewSequencer(cam, controls, cfg.TransitionDuration, cfg.Easing, s.log)
	s.focus = NewFocusController(s, cam, s.seq, NewDebouncer(cfg.DebounceGap), def, s.log)
	s.idle = NewIdleRotation(cfg.IdleSpeed, &s.group, s.focus, s.seq)
	s.seq.Park(def.Plan())
	return s
}

// Focus returns the focus state machine.
func (s *Scene) Focus() *FocusController { return s.focus }

// Sequencer returns the camera transition owner.
func (s *Scene) Sequencer() *Sequencer { return s.seq }

// Group returns the current group rotation.
func (s *Scene) Group() Group { return s.group }

// Placed returns the layout of the current items without group rotation.
func (s *Scene) Placed() []PlacedItem { return s.placed }

// Now is the scene clock, advanced only by Tick.
func (s *Scene) Now() time.Duration { return s.clock }

// SetItems relays out a new item list and reconciles focus with it.
func (s *Scene) SetItems(items []Item) {
	s.items = append(s.items[:0:0], items...)
	s.placed = Layout(s.items, s.cfg.Layout, s.rng)
	s.log.WriteLineString(fmt.Sprintf("cosmos: laid out %d panels (radius=%.3g)", len(s.placed), s.cfg.Layout.Radius(len(s.placed))))
	s.focus.Revalidate()
}

// Post queues a pointer event for the next Tick.
func (s *Scene) Post(ev PointerEvent) { s.pending = append(s.pending, ev) }

// PostClick queues a click on panel i stamped with the scene clock.
func (s *Scene) PostClick(i int) { s.Post(ClickPanel(i, s.clock)) }

// PostBackground queues a background click stamped with the scene clock.
func (s *Scene) PostBackground() { s.Post(ClickBackground(s.clock)) }

// Tick runs one frame: idle rotation, queued pointer events, then the
// sequencer step.
func (s *Scene) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.clock += dt

	s.idle.Tick(dt)

	for _, ev := range s.pending {
		s.focus.HandleClick(ev)
	}
	s.pending = s.pending[:0]

	s.seq.Advance(dt)
}

// Len implements PanelSet.
func (s *Scene) Len() int { return len(s.placed) }

// PanelGeometry implements PanelSet with the group rotation applied.
func (s *Scene) PanelGeometry(i int) (w, h float64, pos r3.Vec) {
	if i < 0 || i >= len(s.placed) {
		return 0, 0, r3.Vec{}
	}
	w, h = s.panelSize(i)
	return w, h, r3.NewRotation(s.group.Yaw, axisY).Rotate(s.placed[i].Position)
}

func (s *Scene) panelSize(i int) (w, h float64) {
	it := s.items[i]
	h = s.cfg.PanelHeight
	if !(it.AspectWidth > 0) || !(it.AspectHeight > 0) {
		return 0, 0
	}
	w = h * it.AspectWidth / it.AspectHeight
	if !finite(w) {
		return 0, 0
	}
	return w, h
}

// Panels returns the world transforms and opacities of every panel.
func (s *Scene) Panels() []Panel {
	out := make([]Panel, len(s.placed))
	yaw := yawQuat(s.group.Yaw)
	for i, p := range s.placed {
		w, h, pos := s.PanelGeometry(i)
		q := quat.Mul(yaw, p.Orientation)
		dimmed := s.focus.Dimmed(i)
		opacity := 1.0
		if dimmed {
			opacity = math.Max(0, math.Min(1, s.cfg.DimmedOpacity))
		}
		out[i] = Panel{
			ID:          p.ID,
			TextureRef:  s.items[i].TextureRef,
			Position:    pos,
			Orientation: q,
			Rotation:    eulerFromMatrix(matrixFromQuat(q)),
			Width:       w,
			Height:      h,
			Dimmed:      dimmed,
			Opacity:     opacity,
		}
	}
	return out
}
