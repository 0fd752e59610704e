package app

import (
	"bookcosmos/quarkgl"

	"gonum.org/v1/gonum/spatial/r3"
)

// viewCamera adapts the quarkgl camera and orbit controller to the cosmos
// Camera and Controls interfaces. It keeps float64 shadows of what the
// sequencer wrote so a parked pose compares exactly against its plan.
type viewCamera struct {
	cam    *quarkgl.Camera
	orbit  *quarkgl.OrbitController
	aspect float64

	pos    r3.Vec
	target r3.Vec
}

func newViewCamera(cam *quarkgl.Camera, orbit *quarkgl.OrbitController, aspect float64) *viewCamera {
	c := &viewCamera{cam: cam, orbit: orbit, aspect: aspect}
	c.pos = vecFrom(cam.Position)
	c.target = vecFrom(orbit.Target)
	return c
}

func vecFrom(v quarkgl.Vec3) r3.Vec {
	x, y, z := v.F64()
	return r3.Vec{X: x, Y: y, Z: z}
}

func vecTo(v r3.Vec) quarkgl.Vec3 { return quarkgl.V3F64(v.X, v.Y, v.Z) }

func (c *viewCamera) Position() r3.Vec {
	if vecTo(c.pos) != c.cam.Position {
		c.pos = vecFrom(c.cam.Position)
	}
	return c.pos
}

func (c *viewCamera) SetPosition(p r3.Vec) {
	c.pos = p
	c.cam.Position = vecTo(p)
}

func (c *viewCamera) VerticalFOV() float64 { return float64(c.cam.FOVYRad) }
func (c *viewCamera) Aspect() float64      { return c.aspect }

func (c *viewCamera) Target() r3.Vec {
	if vecTo(c.target) != c.orbit.Target {
		c.target = vecFrom(c.orbit.Target)
	}
	return c.target
}

// SetTarget moves the orbit pivot and the camera look-at together so the
// controls pick up from the animated pose.
func (c *viewCamera) SetTarget(t r3.Vec) {
	c.target = t
	c.orbit.Target = vecTo(t)
	c.cam.Target = c.orbit.Target
}

func (c *viewCamera) SetEnabled(on bool) {
	if on && !c.orbit.Enabled {
		c.orbit.Sync(*c.cam)
	}
	c.orbit.Enabled = on
}

func (c *viewCamera) Enabled() bool { return c.orbit.Enabled }
