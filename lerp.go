package riverpass

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b as a fraction. Returns 0
// when a == b.
func InverseLerp[F constraints.Float](a, b, v F) F {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// Clamp restricts n to [minN, maxN].
func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)
	return n
}

// Damp is a frame-rate independent Lerp: factor is the per-frame blend at
// refFPS and dt is the elapsed time in seconds. Damp(a, b, f, dt, fps) equals
// Lerp(a, b, f) when dt == 1/fps.
func Damp[F constraints.Float](a, b, factor, dt, refFPS F) F {
	if factor >= 1 {
		return b
	}
	keep := F(math.Pow(float64(1-factor), float64(dt*refFPS)))
	return Lerp(b, a, keep)
}

// approxZero reports whether |v| is within eps of zero.
func approxZero(v, eps float64) bool {
	return math.Abs(v) <= eps
}
