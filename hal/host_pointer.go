//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// clickSlop is how far, in framebuffer pixels, the cursor may travel between
// press and release for the gesture to still count as a click.
const clickSlop = 4

type mouseTracker struct {
	down     bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

func (m *mouseTracker) poll(p *hostPointer) {
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.down = true
		m.dragging = false
		m.startX, m.startY = x, y
		m.lastX, m.lastY = x, y
	}

	if m.down && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !m.dragging && (absInt(x-m.startX) > clickSlop || absInt(y-m.startY) > clickSlop) {
			m.dragging = true
		}
		if m.dragging && (x != m.lastX || y != m.lastY) {
			p.emit(PointerEvent{Kind: PointerDrag, X: x, Y: y, DX: float64(x - m.lastX), DY: float64(y - m.lastY)})
		}
		m.lastX, m.lastY = x, y
	}

	if m.down && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if !m.dragging {
			p.emit(PointerEvent{Kind: PointerClick, X: x, Y: y})
		}
		m.down = false
		m.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, DY: wy})
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
