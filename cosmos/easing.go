package cosmos

import "math"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is constant speed.
func Linear(t float64) float64 { return t }

// QuadInOut accelerates then decelerates quadratically.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// CubicInOut is the default transition curve.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// SineInOut follows half a cosine period.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EasingByName resolves a configured curve name. Unknown names give CubicInOut.
func EasingByName(name string) Easing {
	switch name {
	case "linear":
		return Linear
	case "quad-in-out":
		return QuadInOut
	case "sine-in-out":
		return SineInOut
	default:
		return CubicInOut
	}
}
