package cosmos

import (
	"testing"
	"time"
)

const frame = time.Second / 60

func TestIdleRotationSuspension(t *testing.T) {
	s, _, _ := newTestScene(8)
	idle := s.idle

	if got, want := idle.Tick(time.Second), DefaultIdleSpeed; !approx(got, want, 1e-12) {
		t.Fatalf("idle Tick() = %v, want %v", got, want)
	}

	s.Focus().Select(0)
	if got := idle.Tick(time.Second); got != 0 {
		t.Fatalf("Tick() while focused and busy = %v, want 0", got)
	}
	s.Sequencer().Advance(time.Hour)
	if got := idle.Tick(time.Second); got != 0 {
		t.Fatalf("Tick() while focused = %v, want 0", got)
	}

	s.Focus().Clear()
	if !s.Sequencer().Busy() {
		t.Fatalf("clear did not start a transition")
	}
	if got := idle.Tick(time.Second); got != 0 {
		t.Fatalf("Tick() during transition = %v, want 0", got)
	}
	s.Sequencer().Advance(time.Hour)
	if got := idle.Tick(time.Second); got == 0 {
		t.Fatalf("Tick() after return = 0, want rotation")
	}
}

func TestScenarioSelectThenBackground(t *testing.T) {
	s, cam, ctl := newTestScene(8)
	def := DefaultPose(DefaultConfig().DefaultDistance)

	s.PostClick(3)
	s.Tick(frame)

	if got := s.Focus().State(); got != FocusedOn(3) {
		t.Fatalf("State() = %v, want focused(3)", got)
	}
	for i, p := range s.Panels() {
		if p.Dimmed != (i != 3) {
			t.Fatalf("panel %d dimmed = %v", i, p.Dimmed)
		}
		if p.Dimmed && p.Opacity != DefaultConfig().DimmedOpacity {
			t.Fatalf("panel %d opacity = %v", i, p.Opacity)
		}
	}
	target := s.Focus().Plan(FocusedOn(3))

	elapsed := frame
	for s.Sequencer().Busy() {
		if ctl.Enabled() {
			t.Fatalf("controls enabled mid-transition at %v", elapsed)
		}
		s.Tick(frame)
		elapsed += frame
	}
	if elapsed < DefaultTransitionDuration {
		t.Fatalf("transition finished after %v, want >= %v", elapsed, DefaultTransitionDuration)
	}
	if !ctl.Enabled() {
		t.Fatalf("controls not re-enabled")
	}
	if cam.pos != target.CameraTarget || ctl.target != target.LookTarget {
		t.Fatalf("camera = %v look %v, want %+v", cam.pos, ctl.target, target)
	}

	s.PostBackground()
	s.Tick(frame)
	if got := s.Focus().State(); got != NoFocus() {
		t.Fatalf("State() = %v, want none", got)
	}
	for i, p := range s.Panels() {
		if p.Dimmed || p.Opacity != 1 {
			t.Fatalf("panel %d dimmed=%v opacity=%v after clear", i, p.Dimmed, p.Opacity)
		}
	}
	for s.Sequencer().Busy() {
		s.Tick(frame)
	}
	if cam.pos != def.Position || ctl.target != def.LookAt {
		t.Fatalf("camera = %v look %v, want default %+v", cam.pos, ctl.target, def)
	}
}

func TestSceneEventsWithinFrameAreDebounced(t *testing.T) {
	s, _, _ := newTestScene(8)
	s.PostClick(1)
	s.PostClick(2)
	s.Tick(frame)
	if got := s.Focus().State(); got != FocusedOn(1) {
		t.Fatalf("State() = %v, want focused(1)", got)
	}
}

func TestScenePanelsFaceOriginAfterRotation(t *testing.T) {
	s, _, _ := newTestScene(5)
	s.Tick(7 * time.Second)
	for i, p := range s.Panels() {
		fwd := RotateVec(p.Orientation, axisZ)
		dir := p.Position
		dot := (fwd.X*dir.X + fwd.Y*dir.Y + fwd.Z*dir.Z)
		if dot >= 0 {
			t.Fatalf("panel %d faces away from origin", i)
		}
	}
}

func TestSceneInitialPose(t *testing.T) {
	_, cam, ctl := newTestScene(0)
	def := DefaultPose(DefaultConfig().DefaultDistance)
	if cam.pos != def.Position || ctl.target != def.LookAt || !ctl.Enabled() {
		t.Fatalf("initial camera %v look %v enabled %v", cam.pos, ctl.target, ctl.Enabled())
	}
}

func TestSceneZeroDebounceAcceptsEveryClick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebounceGap = 0
	s := NewScene(cfg, newFakeCamera(), &fakeControls{}, nil)
	s.SetItems(testItems(4))

	s.PostClick(1)
	s.PostClick(2)
	s.Tick(time.Millisecond)
	if got := s.Focus().State(); got != FocusedOn(2) {
		t.Fatalf("focus = %v, want panel 2 with no debounce", got)
	}
}
