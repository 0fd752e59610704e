package cosmos

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FramingDistance returns the camera distance at which a w×h panel fills the
// view, picking the tighter of the height and width fits. ok is false when
// the inputs cannot produce a finite positive distance.
func FramingDistance(w, h, vfov, aspect float64) (d float64, ok bool) {
	if !(w > 0) || !(h > 0) || !finite(w) || !finite(h) {
		return 0, false
	}
	if !(vfov > 0) || vfov >= math.Pi || !(aspect > 0) || !finite(aspect) {
		return 0, false
	}
	halfV := math.Tan(vfov / 2)
	hfov := 2 * math.Atan(halfV*aspect)
	halfH := math.Tan(hfov / 2)
	if !(halfV > 0) || !(halfH > 0) {
		return 0, false
	}

	forHeight := (h / 2) / halfV
	forWidth := (w / 2) / halfH
	d = math.Min(forHeight, forWidth)
	if !finite(d) || d <= 0 {
		return 0, false
	}
	return d, true
}

// ComputeFraming returns the pose that frames a panel at pos, seen from
// outside along the ray origin→pos. Degenerate input yields def.
func ComputeFraming(w, h float64, pos r3.Vec, vfov, aspect float64, origin r3.Vec, def Pose) Pose {
	if !finiteVec(pos) || !finiteVec(origin) {
		return def
	}
	d, ok := FramingDistance(w, h, vfov, aspect)
	if !ok {
		return def
	}

	dir := r3.Sub(pos, origin)
	if r3.Norm(dir) == 0 {
		dir = r3.Sub(def.Position, def.LookAt)
		if r3.Norm(dir) == 0 {
			dir = axisZ
		}
	}
	cam := r3.Add(pos, r3.Scale(d, r3.Unit(dir)))
	if !finiteVec(cam) {
		return def
	}
	return Pose{Position: cam, LookAt: pos}
}

// DefaultPose is the zoomed-out view of the whole sphere.
func DefaultPose(distance float64) Pose {
	return Pose{Position: r3.Vec{Z: distance}}
}
