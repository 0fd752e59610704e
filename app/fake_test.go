package app

import (
	"bookcosmos/hal"
)

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB { return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	p := uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

type fakeLog []string

func (l *fakeLog) WriteLineString(s string) { *l = append(*l, s) }
func (l *fakeLog) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeHAL struct {
	fb  *fakeFB
	log fakeLog
	kbd fakeKeyboard
	ptr fakePointer
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		fb:  newFakeFB(w, h),
		kbd: fakeKeyboard{ch: make(chan hal.KeyEvent, 16)},
		ptr: fakePointer{ch: make(chan hal.PointerEvent, 16)},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return &h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *fakeHAL) Pointer() hal.Pointer         { return h.ptr }
