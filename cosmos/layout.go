package cosmos

import (
	"math"
	"math/rand"
)

// LayoutConfig holds the sphere placement constants.
type LayoutConfig struct {
	SmallRadius float64
	LargeRadius float64
	// Cutoff is the item count from which LargeRadius is used.
	Cutoff int
	// JitterFraction bounds the per-item radius jitter as a fraction of the radius.
	JitterFraction float64
}

// DefaultLayoutConfig returns the stock sphere constants.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		SmallRadius:    6,
		LargeRadius:    10,
		Cutoff:         50,
		JitterFraction: 0.08,
	}
}

// Radius returns the base sphere radius for n items.
func (c LayoutConfig) Radius(n int) float64 {
	if n < c.Cutoff {
		return c.SmallRadius
	}
	return c.LargeRadius
}

// JitterBound returns the absolute radius jitter bound for n items.
func (c LayoutConfig) JitterBound(n int) float64 {
	return c.Radius(n) * math.Abs(c.JitterFraction)
}

// Layout places items on a sphere. Ordering is preserved; shuffling is the
// caller's job. A nil rng jitters from the process-wide source.
func Layout(items []Item, cfg LayoutConfig, rng *rand.Rand) []PlacedItem {
	n := len(items)
	if n == 0 {
		return nil
	}
	base := cfg.Radius(n)
	jitter := math.Abs(cfg.JitterFraction)
	spread := math.Sqrt(float64(n) * math.Pi)

	out := make([]PlacedItem, n)
	for i, it := range items {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := spread * phi

		u := 0.5
		if jitter > 0 {
			if rng != nil {
				u = rng.Float64()
			} else {
				u = rand.Float64()
			}
		}
		r := base * (1 + jitter*(2*u-1))

		pos := sphericalToCartesian(r, phi, theta)
		q, e := lookAtOrigin(pos)
		out[i] = PlacedItem{
			ID:          it.ID,
			Position:    pos,
			Orientation: q,
			Rotation:    e,
		}
	}
	return out
}
