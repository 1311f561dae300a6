package xfloat

import "math"

// TwoSum returns s = fl(a+b) and the exact rounding error e, such that
// a + b == s + e holds exactly. The operands may be given in either order.
//
// NaN and Inf operands propagate according to IEEE-754; e will usually be
// NaN in that case.
func TwoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	aa := s - bb
	return s, (a - aa) + (b - bb)
}

// FastTwoSum is the three-operation version of TwoSum. It is only exact if
// |a| >= |b| or a == 0.
func FastTwoSum(a, b float64) (s, e float64) {
	s = a + b
	return s, b - (s - a)
}

// TwoProd returns p = fl(a*b) and the exact rounding error e, such that
// a * b == p + e holds exactly, provided a*b neither overflows nor has a
// residual below the subnormal range.
//
// The residual comes from a single fused multiply-add. See TwoProdDekker for
// the split-based equivalent.
func TwoProd(a, b float64) (p, e float64) {
	p = a * b
	return p, math.FMA(a, b, -p)
}
