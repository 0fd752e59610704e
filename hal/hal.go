// Package hal is the host boundary of the cosmos viewer: log output, a
// framebuffer, pointer and keyboard input, and the two frame runners
// (desktop window and headless ticker).
package hal

import "time"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind classifies a pointer event.
type PointerKind uint8

const (
	// PointerClick is a press and release without a drag in between.
	PointerClick PointerKind = iota + 1
	// PointerDrag carries the movement since the previous drag event.
	PointerDrag
	// PointerWheel carries a scroll delta in DY.
	PointerWheel
)

// PointerEvent is a mouse event in framebuffer coordinates.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   int
	DX, DY float64
}

// Pointer provides pointer events (mouse on desktop, scripted when headless).
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// HAL provides the only contact point between the viewer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}

// Step advances the application by one frame of dt.
type Step func(dt time.Duration) error
