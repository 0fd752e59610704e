//go:build cgo

package hal

import (
	"image"
	"os"
	"time"

	"bookcosmos/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Width  int
	Height int
	Scale  int
	TPS    int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard and mouse input. It blocks until the window closes.
func RunWindow(newApp func(HAL) Step, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	step := newApp(h)

	g := &hostGame{h: h, step: step, scale: cfg.Scale, dt: time.Second / time.Duration(cfg.TPS)}
	ebiten.SetWindowTitle("Book cosmos (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    Step
	scale   int
	dt      time.Duration
	mouse   mouseTracker
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.mouse.poll(g.h.ptr)
	if g.step != nil {
		if err := g.step(g.dt); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	g.img, g.scratch = fb.toRGBA(g.img, g.scratch)
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
