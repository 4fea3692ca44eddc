package model

import "math"

// Clamp01 pins v into [0, 1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FlipVertical converts a bottom-up normalized Y coordinate to the top-down
// convention used by this package (and back; the mapping is its own inverse).
func FlipVertical(y float64) float64 {
	return 1 - y
}

// NormalizeSpan converts a pixel interval [lo, hi] on an axis of the given
// extent into normalized coordinates. The result is ordered and clamped.
// A non-positive extent yields (0, 0).
func NormalizeSpan(lo, hi, extent float64) (float64, float64) {
	if extent <= 0 {
		return 0, 0
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return Clamp01(lo / extent), Clamp01(hi / extent)
}

// Overlap returns the length of the intersection of [a0, a1] and [b0, b1],
// or 0 when they are disjoint.
func Overlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}
