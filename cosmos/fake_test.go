package cosmos

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type fakeCamera struct {
	pos    r3.Vec
	vfov   float64
	aspect float64
	writes int
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{vfov: 75 * math.Pi / 180, aspect: 16.0 / 9.0}
}

func (c *fakeCamera) Position() r3.Vec     { return c.pos }
func (c *fakeCamera) SetPosition(p r3.Vec) { c.pos = p; c.writes++ }
func (c *fakeCamera) VerticalFOV() float64 { return c.vfov }
func (c *fakeCamera) Aspect() float64      { return c.aspect }

type fakeControls struct {
	target   r3.Vec
	enabled  bool
	disables int
	enables  int
}

func (c *fakeControls) Target() r3.Vec     { return c.target }
func (c *fakeControls) SetTarget(t r3.Vec) { c.target = t }
func (c *fakeControls) Enabled() bool      { return c.enabled }

func (c *fakeControls) SetEnabled(on bool) {
	c.enabled = on
	if on {
		c.enables++
	} else {
		c.disables++
	}
}

type logLines []string

func (l *logLines) WriteLineString(s string) { *l = append(*l, s) }

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i%26)), AspectWidth: 2, AspectHeight: 3}
	}
	return items
}

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
