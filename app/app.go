// Package app runs the cosmos viewer on top of a hal.HAL: it owns the
// quarkgl scene, routes pointer and keyboard input into the cosmos core and
// draws a small HUD.
package app

import (
	"errors"
	"fmt"
	"time"

	"bookcosmos/cosmos"
	"bookcosmos/hal"
	"bookcosmos/internal/config"
	"bookcosmos/quarkgl"
)

var ErrNoFramebuffer = errors.New("app: display has no RGB565 framebuffer")

// Config selects the view tuning, the initial items and an optional feed of
// replacement item lists.
type Config struct {
	View  config.Config
	Items []cosmos.Item
	// Reloads delivers new item lists, typically from catalog.Watch.
	Reloads <-chan []cosmos.Item
}

const (
	orbitDragGain  = 0.01
	orbitKeyStep   = 0.05
	orbitWheelGain = 0.8
)

type viewer struct {
	h   hal.HAL
	log hal.Logger
	fb  hal.Framebuffer
	cfg Config

	width, height int

	r      *quarkgl.Renderer
	s      *quarkgl.Scene
	orbit  *quarkgl.OrbitController
	camera *viewCamera

	core   *cosmos.Scene
	meshes panelMeshes
	gen    int

	held map[hal.KeyCode]bool

	hud hud
}

// New builds the viewer and returns its frame step. Construction errors are
// reported by the first call of the step.
func New(h hal.HAL, cfg Config) hal.Step {
	v, err := newViewer(h, cfg)
	if err != nil {
		return func(time.Duration) error { return err }
	}
	return guard(h, v.step)
}

func newViewer(h hal.HAL, cfg Config) (*viewer, error) {
	if h == nil || h.Display() == nil {
		return nil, ErrNoFramebuffer
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Width() <= 0 || fb.Height() <= 0 {
		return nil, ErrNoFramebuffer
	}
	if err := cfg.View.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	v := &viewer{
		h:      h,
		log:    h.Logger(),
		fb:     fb,
		cfg:    cfg,
		width:  fb.Width(),
		height: fb.Height(),
		held:   make(map[hal.KeyCode]bool),
	}
	v.ensureScene()
	v.hud = newHUD(fb)

	v.core = cosmos.NewScene(cfg.View.Core(), v.camera, v.camera, v.log)
	v.setItems(cfg.Items)
	return v, nil
}

func (v *viewer) ensureScene() {
	cam := v.cfg.View.Camera

	v.r = quarkgl.NewRenderer(v.width, v.height, true)
	v.r.ClearColor = quarkgl.RGB(0x05, 0x08, 0x12)
	v.r.SetRenderMode(quarkgl.RenderSolidFlat)

	v.s = quarkgl.CreateScene(0)
	v.s.Camera.FOVYRad = quarkgl.Scalar(v.cfg.View.FOVRad())
	v.s.Camera.Near = quarkgl.Scalar(cam.Near)
	v.s.Camera.Far = quarkgl.Scalar(cam.Far)
	v.s.Light.Mode = quarkgl.LightOff

	v.orbit = &quarkgl.OrbitController{
		MinRadius: quarkgl.Scalar(cam.Near * 10),
		MaxRadius: quarkgl.Scalar(cam.Far * 0.8),
		Damping:   quarkgl.Scalar(cam.Damping),
	}
	v.camera = newViewCamera(&v.s.Camera, v.orbit, float64(v.width)/float64(v.height))
	v.meshes.fallbackSide = v.cfg.View.Panel.Height
}

func (v *viewer) setItems(items []cosmos.Item) {
	v.core.SetItems(items)
	v.gen++
}

func (v *viewer) step(dt time.Duration) error {
	v.drainReloads()
	v.drainKeyboard()
	v.drainPointer()
	v.orbitHeldKeys()

	v.core.Tick(dt)
	v.orbit.Update(&v.s.Camera)

	return v.render()
}

func (v *viewer) drainReloads() {
	if v.cfg.Reloads == nil {
		return
	}
	for {
		select {
		case items, ok := <-v.cfg.Reloads:
			if !ok {
				v.cfg.Reloads = nil
				return
			}
			v.setItems(items)
		default:
			return
		}
	}
}

func (v *viewer) drainKeyboard() {
	kb := v.h.Input().Keyboard()
	if kb == nil {
		return
	}
	for {
		select {
		case ev := <-kb.Events():
			v.handleKey(ev)
		default:
			return
		}
	}
}

func (v *viewer) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyLeft, hal.KeyRight, hal.KeyUp, hal.KeyDown:
		v.held[ev.Code] = ev.Press
		return
	}
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyEscape:
		v.core.PostBackground()
	case hal.KeyTab:
		if n := v.core.Len(); n > 0 {
			next := 0
			if i, ok := v.core.Focus().State().Index(); ok {
				next = (i + 1) % n
			}
			v.core.PostClick(next)
		}
	}
	switch ev.Rune {
	case 'w':
		if v.r.Mode == quarkgl.RenderWireframe {
			v.r.SetRenderMode(quarkgl.RenderSolidFlat)
		} else {
			v.r.SetRenderMode(quarkgl.RenderWireframe)
		}
	case '+', '=':
		v.orbit.Zoom(-orbitWheelGain)
	case '-':
		v.orbit.Zoom(orbitWheelGain)
	}
}

// orbitHeldKeys turns held arrow keys into orbit input. The controller drops
// it while a transition owns the camera.
func (v *viewer) orbitHeldKeys() {
	if v.held[hal.KeyLeft] {
		v.orbit.Rotate(-orbitKeyStep, 0)
	}
	if v.held[hal.KeyRight] {
		v.orbit.Rotate(orbitKeyStep, 0)
	}
	if v.held[hal.KeyUp] {
		v.orbit.Rotate(0, -orbitKeyStep)
	}
	if v.held[hal.KeyDown] {
		v.orbit.Rotate(0, orbitKeyStep)
	}
}

func (v *viewer) drainPointer() {
	p := v.h.Input().Pointer()
	if p == nil {
		return
	}
	for {
		select {
		case ev := <-p.Events():
			v.handlePointer(ev)
		default:
			return
		}
	}
}

// handlePointer hit-tests clicks against the pick buffer of the last frame.
func (v *viewer) handlePointer(ev hal.PointerEvent) {
	switch ev.Kind {
	case hal.PointerClick:
		if i := v.r.PickAt(ev.X, ev.Y); i != quarkgl.NoPick {
			v.core.PostClick(i)
		} else {
			v.core.PostBackground()
		}
	case hal.PointerDrag:
		v.orbit.Rotate(quarkgl.Scalar(-ev.DX*orbitDragGain), quarkgl.Scalar(-ev.DY*orbitDragGain))
	case hal.PointerWheel:
		v.orbit.Zoom(quarkgl.Scalar(-ev.DY * orbitWheelGain))
	}
}

func (v *viewer) render() error {
	panels := v.core.Panels()
	v.meshes.sync(v.s, panels, v.gen)

	target := &quarkgl.RGB565Target{
		Buf:    v.fb.Buffer(),
		Stride: v.fb.StrideBytes(),
		W:      v.width,
		H:      v.height,
	}
	v.r.Render(target, v.s)
	v.hud.draw(v.status(len(panels)))

	if err := v.fb.Present(); err != nil {
		return fmt.Errorf("app: present: %w", err)
	}
	return nil
}

func (v *viewer) status(n int) hudStatus {
	st := hudStatus{Panels: n, Focus: "none", Wireframe: v.r.Mode == quarkgl.RenderWireframe}
	if i, ok := v.core.Focus().State().Index(); ok {
		st.Focus = fmt.Sprintf("#%d", i)
		if placed := v.core.Placed(); i < len(placed) {
			st.Focus = placed[i].ID
		}
	}
	if t := v.core.Sequencer().Active(); t.Live() {
		st.Moving = true
		st.Progress = t.Progress()
	}
	return st
}
