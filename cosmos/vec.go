package cosmos

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteVec(v r3.Vec) bool { return finite(v.X) && finite(v.Y) && finite(v.Z) }

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func nearVec(a, b r3.Vec, eps float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= eps
}

// lookAtOrigin returns the rotation that turns local +Z towards the origin
// from pos, keeping +Y as close to world up as possible.
func lookAtOrigin(pos r3.Vec) (quat.Number, Euler) {
	z := r3.Scale(-1, pos)
	if r3.Norm(z) == 0 {
		return quat.Number{Real: 1}, Euler{}
	}
	z = r3.Unit(z)

	up := axisY
	if math.Abs(r3.Dot(up, z)) > 1-1e-9 {
		up = axisZ
	}
	x := r3.Unit(r3.Cross(up, z))
	y := r3.Cross(z, x)

	// Columns are the local axes in world space.
	m := [3][3]float64{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
	return quatFromMatrix(m), eulerFromMatrix(m)
}

func quatFromMatrix(m [3][3]float64) quat.Number {
	tr := m[0][0] + m[1][1] + m[2][2]
	var q quat.Number
	switch {
	case tr > 0:
		s := 0.5 / math.Sqrt(tr+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m[2][1] - m[1][2]) * s,
			Jmag: (m[0][2] - m[2][0]) * s,
			Kmag: (m[1][0] - m[0][1]) * s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q = quat.Number{
			Real: (m[2][1] - m[1][2]) / s,
			Imag: 0.25 * s,
			Jmag: (m[0][1] + m[1][0]) / s,
			Kmag: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q = quat.Number{
			Real: (m[0][2] - m[2][0]) / s,
			Imag: (m[0][1] + m[1][0]) / s,
			Jmag: 0.25 * s,
			Kmag: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q = quat.Number{
			Real: (m[1][0] - m[0][1]) / s,
			Imag: (m[0][2] + m[2][0]) / s,
			Jmag: (m[1][2] + m[2][1]) / s,
			Kmag: 0.25 * s,
		}
	}
	return quat.Scale(1/quat.Abs(q), q)
}

func eulerFromMatrix(m [3][3]float64) Euler {
	var e Euler
	e.Y = math.Asin(math.Max(-1, math.Min(1, m[0][2])))
	if math.Abs(m[0][2]) < 0.9999999 {
		e.X = math.Atan2(-m[1][2], m[2][2])
		e.Z = math.Atan2(-m[0][1], m[0][0])
	} else {
		e.X = math.Atan2(m[2][1], m[1][1])
	}
	return e
}

// RotateVec applies q to v.
func RotateVec(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// yawQuat is a rotation of angle radians about +Y.
func yawQuat(angle float64) quat.Number {
	return quat.Number(r3.NewRotation(angle, axisY))
}

// sphericalToCartesian uses phi as the polar angle from +Y and theta as the
// azimuth from +Z towards +X.
func sphericalToCartesian(r, phi, theta float64) r3.Vec {
	sp, cp := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	return r3.Vec{
		X: r * sp * st,
		Y: r * cp,
		Z: r * sp * ct,
	}
}

func matrixFromQuat(q quat.Number) [3][3]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}
