package app

import (
	"fmt"
	"image/color"

	"bookcosmos/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	hudFG  = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudDim = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
)

type hudStatus struct {
	Panels    int
	Focus     string
	Moving    bool
	Progress  float64
	Wireframe bool
}

func (s hudStatus) lines() []string {
	state := "idle"
	if s.Moving {
		state = fmt.Sprintf("moving %3.0f%%", s.Progress*100)
	}
	mode := ""
	if s.Wireframe {
		mode = "  wire"
	}
	return []string{
		fmt.Sprintf("cosmos  %d panels%s", s.Panels, mode),
		fmt.Sprintf("focus %s  %s", s.Focus, state),
	}
}

type hud struct {
	d          *fbDisplayer
	font       tinyfont.Fonter
	fontHeight int16
}

func newHUD(fb hal.Framebuffer) hud {
	return hud{d: &fbDisplayer{fb: fb}, font: &proggy.TinySZ8pt7b, fontHeight: 10}
}

func (u hud) draw(st hudStatus) {
	y := int16(4)
	for _, line := range st.lines() {
		u.text(6, y, line, hudFG)
		y += u.fontHeight
	}
	_, h := u.d.Size()
	u.text(6, h-u.fontHeight-2, "click focus  esc back  drag orbit  w wire", hudDim)
}

func (u hud) text(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(u.d, u.font, x, y+u.fontHeight, s, c)
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

// fbDisplayer lets tinyfont draw straight into an RGB565 framebuffer.
type fbDisplayer struct {
	fb hal.Framebuffer
}

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }
