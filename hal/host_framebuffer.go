package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// toRGBA expands the framebuffer into dst, allocating when dst is nil or
// the wrong size.
func (f *hostFramebuffer) toRGBA(dst *image.RGBA, scratch []byte) (*image.RGBA, []byte) {
	if dst == nil || dst.Bounds().Dx() != f.width || dst.Bounds().Dy() != f.height {
		dst = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	}
	if len(scratch) != len(f.buf) {
		scratch = make([]byte, len(f.buf))
	}
	f.snapshotRGB565(scratch)

	pix := dst.Pix
	for i := 0; i+1 < len(scratch) && i/2*4+3 < len(pix); i += 2 {
		r, g, b := rgb888From565(uint16(scratch[i]) | uint16(scratch[i+1])<<8)
		j := (i / 2) * 4
		pix[j+0] = r
		pix[j+1] = g
		pix[j+2] = b
		pix[j+3] = 0xFF
	}
	return dst, scratch
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(((p >> 11) & 0x1F) * 255 / 31)
	g = uint8(((p >> 5) & 0x3F) * 255 / 63)
	b = uint8((p & 0x1F) * 255 / 31)
	return r, g, b
}
