package xfloat

import (
	"math"
)

const (
	mask  = 0x7FF
	shift = 64 - 11 - 1
	bias  = 1023
)

// ulp returns the distance between |x| and the next float64 away from zero
// in the same binade. Subnormals all share the smallest ulp. Inf and NaN
// return +Inf, which makes anything "non-overlapping" with them.
func ulp(x float64) float64 {
	exp := (math.Float64bits(x) >> shift) & mask
	switch {
	case exp == mask:
		return math.Inf(1)
	case exp > shift:
		return math.Float64frombits((exp - shift) << shift)
	case exp == 0:
		return math.Float64frombits(1)
	default:
		// ulp is itself subnormal: 2^(exp-1075) == bit (exp-1).
		return math.Float64frombits(1 << (exp - 1))
	}
}

// nonOverlapping reports whether next falls entirely below the rounding error
// of prev, i.e. |next| <= ulp(prev)/2. A zero may only be followed by zeros.
//
// |next|*2 is compared rather than ulp/2 so that the test stays exact when
// ulp(prev) is the smallest subnormal.
func nonOverlapping(prev, next float64) bool {
	if next == 0 {
		return true
	}
	if prev == 0 {
		return false
	}
	return math.Abs(next)*2 <= ulp(prev)
}

// isNormalized reports whether xs is descending, pairwise non-overlapping and
// has zeros only at the tail.
func isNormalized(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !nonOverlapping(xs[i-1], xs[i]) {
			return false
		}
	}
	return true
}

// exactPrec returns a big.Float precision wide enough to hold the exact sum of
// xs, which must be normalized. The extra word covers carries and the
// subnormal tail.
func exactPrec(xs []float64) uint {
	var top, bottom int
	var found bool
	for _, x := range xs {
		if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		e := math.Ilogb(x)
		if !found {
			top, bottom, found = e, e, true
			continue
		}
		if e > top {
			top = e
		}
		if e < bottom {
			bottom = e
		}
	}
	if !found {
		return 64
	}
	return uint(top-bottom) + 53 + 64
}
