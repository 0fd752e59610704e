package quarkgl

import "math"

// OrbitController provides orbit/zoom interactions for a camera.
//
// Input only moves the camera while Enabled is set. Rotate and Zoom feed a
// velocity that Update decays by Damping every frame, so a released drag
// settles instead of stopping dead. It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	Enabled bool
	// Damping is the fraction of velocity kept per Update, in [0,1). Zero
	// applies input immediately without inertia.
	Damping Scalar

	vYaw    Scalar
	vPitch  Scalar
	vRadius Scalar
}

// maxPitch keeps the camera off the poles where the up vector degenerates.
const maxPitch = Scalar(math.Pi/2 - 0.01)

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// Sync derives yaw, pitch and radius from the camera's current position
// around Target and drops any pending velocity. Call it after something
// other than the controller moved the camera. The pose is adopted as is, even
// outside the radius and pitch limits; Update only keeps it from moving
// further out of range.
func (c *OrbitController) Sync(cam Camera) {
	d := cam.Position.Sub(c.Target)
	r := Len(d)
	c.vYaw, c.vPitch, c.vRadius = 0, 0, 0
	if r == 0 {
		c.Radius = 0
		return
	}
	c.Radius = r
	c.Yaw = Scalar(math.Atan2(float64(d.X), float64(d.Z)))
	c.Pitch = -Scalar(math.Asin(float64(clampF32(d.Y/r, -1, 1))))
}

// Rotate queues an orbit by the given angles. Ignored while disabled.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	if !c.Enabled {
		return
	}
	c.vYaw += deltaYaw
	c.vPitch += deltaPitch
}

// Zoom queues a radius change. Ignored while disabled.
func (c *OrbitController) Zoom(delta Scalar) {
	if !c.Enabled {
		return
	}
	c.vRadius += delta
}

// Update applies pending velocity and writes the camera. It reports whether
// the camera moved. Disabled controllers drop velocity and leave cam alone.
func (c *OrbitController) Update(cam *Camera) bool {
	if !c.Enabled {
		c.vYaw, c.vPitch, c.vRadius = 0, 0, 0
		return false
	}
	if c.vYaw == 0 && c.vPitch == 0 && c.vRadius == 0 {
		return false
	}
	c.Yaw += c.vYaw
	c.Pitch = limit(c.Pitch, c.Pitch+c.vPitch, -maxPitch, maxPitch)
	c.Radius = limit(c.Radius, c.Radius+c.vRadius, c.MinRadius, c.radiusMax())
	c.Apply(cam)

	k := Clamp01(c.Damping)
	c.vYaw *= k
	c.vPitch *= k
	c.vRadius *= k
	const rest = 1e-4
	if absF32(c.vYaw) < rest && absF32(c.vPitch) < rest && absF32(c.vRadius) < rest {
		c.vYaw, c.vPitch, c.vRadius = 0, 0, 0
	}
	return true
}

func (c *OrbitController) radiusMax() Scalar {
	if c.MaxRadius == 0 {
		return Scalar(math.Inf(1))
	}
	return c.MaxRadius
}

// limit moves cur towards next but not past [lo, hi]. A cur already outside
// the range may stay there or move back in; it is never pulled in by force.
func limit(cur, next, lo, hi Scalar) Scalar {
	if next < lo && next < cur {
		next = lo
		if cur < lo {
			next = cur
		}
	}
	if next > hi && next > cur {
		next = hi
		if cur > hi {
			next = cur
		}
	}
	return next
}

func absF32(v Scalar) Scalar {
	if v < 0 {
		return -v
	}
	return v
}
