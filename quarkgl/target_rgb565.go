package quarkgl

// RGB565Target renders into an RGB565 framebuffer buffer.
//
// Callers provide the backing buffer and layout (stride).
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) Clear(c Color) {
	if !t.ok() {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if !t.ok() {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	if c.A == 0 {
		return
	}
	if c.A != 0xFF {
		r, g, b := rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
		c = c.Over(RGB(r, g, b))
	}
	p := rgb565From888(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// At decodes the pixel at x,y.
func (t *RGB565Target) At(x, y int) Color {
	if !t.ok() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return Color{}
	}
	r, g, b := rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
	return RGB(r, g, b)
}

func (t *RGB565Target) ok() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F
	return uint8((rr * 255) / 31), uint8((gg * 255) / 63), uint8((bb * 255) / 31)
}
