package xfloat

import (
	"fmt"
	"math"
	"math/big"
)

// MFloat is a multi-term expansion: the unevaluated sum of k float64
// components, descending in magnitude and pairwise non-overlapping, giving
// roughly k*53 bits of significand. k is fixed per value and lies in
// [1, MaxTerms]; contributions beyond the k-th term are discarded.
//
// MFloat is a comparable value type; all operations return new values. The
// zero value is a single term 0.
//
// Binary operations on values with different term counts produce a result
// with the larger count.
type MFloat struct {
	k uint8
	x [MaxTerms]float64
}

// MFloatFrom64 lifts v into a k term MFloat. It panics if k is outside
// [1, MaxTerms].
func MFloatFrom64(k int, v float64) MFloat {
	checkTerms(k)
	m := MFloat{k: uint8(k)}
	m.x[0] = v
	return m
}

// MFloatFromParts creates a k term MFloat from a value and a correction term,
// so MFloatFromParts(k, v, 0) lifts v. It panics if k is outside
// [1, MaxTerms].
func MFloatFromParts(k int, value, correction float64) MFloat {
	if correction == 0 {
		return MFloatFrom64(k, value)
	}
	return MFloatFromComponents(k, value, correction)
}

// MFloatFromComponents creates a k term MFloat from the sum of xs, which may
// be given in any order and may overlap; see Renormalize. It panics if k is
// outside [1, MaxTerms].
func MFloatFromComponents(k int, xs ...float64) MFloat {
	checkTerms(k)
	m := MFloat{k: uint8(k)}
	renormalize(m.x[:k], xs)
	return m
}

// MFloatFromBigFloat creates the k term MFloat nearest to b. accurate is
// false if b does not fit in k terms or is outside the float64 range. It
// panics if k is outside [1, MaxTerms].
func MFloatFromBigFloat(k int, b *big.Float) (out MFloat, accurate bool) {
	checkTerms(k)
	out.k = uint8(k)
	accurate = splitBigFloat(b, out.x[:k])
	if !isFinite(out.x[0]) {
		v := out.x[0]
		out.x = [MaxTerms]float64{}
		out.x[0] = v
	}
	return out, accurate
}

// MFloatFromString parses s (see DDFromString) into the nearest k term
// MFloat.
func MFloatFromString(k int, s string) (out MFloat, err error) {
	checkTerms(k)
	b, err := parseBigFloat(s)
	if err != nil {
		return out, err
	}
	out, _ = MFloatFromBigFloat(k, b)
	return out, nil
}

func (m MFloat) terms() int {
	if m.k == 0 {
		return 1
	}
	return int(m.k)
}

// Terms returns the term count k.
func (m MFloat) Terms() int { return m.terms() }

// WithTerms returns m with k terms, renormalizing (and possibly discarding
// precision) if k is smaller than m's term count.
func (m MFloat) WithTerms(k int) MFloat {
	return MFloatFromComponents(k, m.x[:m.terms()]...)
}

// Component returns the i-th component, leading term first.
func (m MFloat) Component(i int) float64 {
	if i < 0 || i >= m.terms() {
		panic(fmt.Errorf("xfloat: component %d out of range [0, %d)", i, m.terms()))
	}
	return m.x[i]
}

// Components returns a copy of the k components of m, leading term first.
func (m MFloat) Components() []float64 {
	out := make([]float64, m.terms())
	copy(out, m.x[:])
	return out
}

func (m MFloat) IsZero() bool { return m.x[0] == 0 }

func (m MFloat) IsNaN() bool { return m.x[0] != m.x[0] }

// IsInf reports whether m is an infinity, according to sign. See math.IsInf.
func (m MFloat) IsInf(sign int) bool { return math.IsInf(m.x[0], sign) }

// AsFloat64 returns m rounded to a float64.
func (m MFloat) AsFloat64() float64 {
	k := m.terms()
	s := m.x[k-1]
	for i := k - 2; i >= 0; i-- {
		s += m.x[i]
	}
	return s
}

// AsDD converts m to a DD, discarding any terms beyond the second.
func (m MFloat) AsDD() DD {
	var xs [2]float64
	renormalize(xs[:], m.x[:m.terms()])
	return mkDD(xs[0], xs[1])
}

// IntoBigFloat sets b to the exact value of m. It panics with big.ErrNaN if m
// is NaN.
func (m MFloat) IntoBigFloat(b *big.Float) {
	intoBigFloat(b, m.x[:m.terms()]...)
}

// AsBigFloat allocates a new big.Float holding the exact value of m. It
// panics with big.ErrNaN if m is NaN.
func (m MFloat) AsBigFloat() *big.Float {
	b := new(big.Float)
	intoBigFloat(b, m.x[:m.terms()]...)
	return b
}

func (m MFloat) Sign() int {
	if m.x[0] > 0 {
		return 1
	} else if m.x[0] < 0 {
		return -1
	}
	return 0
}

func (m MFloat) Neg() MFloat {
	for i := range m.x {
		m.x[i] = -m.x[i]
	}
	return m
}

func (m MFloat) Abs() MFloat {
	if math.Signbit(m.x[0]) {
		return m.Neg()
	}
	return m
}

// Cmp compares m and n component by component and returns -1, 0 or +1. Term
// counts do not take part in the comparison. The result is 0 if either
// value is NaN.
func (m MFloat) Cmp(n MFloat) int {
	if m.IsNaN() || n.IsNaN() {
		return 0
	}
	for i := range m.x {
		if m.x[i] < n.x[i] {
			return -1
		} else if m.x[i] > n.x[i] {
			return 1
		}
	}
	return 0
}

// Equal reports whether m and n hold the same value, regardless of their term
// counts. Use == to also compare term counts.
func (m MFloat) Equal(n MFloat) bool { return m.x == n.x }

func (m MFloat) GreaterThan(n MFloat) bool { return m.Cmp(n) > 0 && !m.IsNaN() && !n.IsNaN() }

func (m MFloat) GreaterOrEqualTo(n MFloat) bool { return m.Cmp(n) >= 0 && !m.IsNaN() && !n.IsNaN() }

func (m MFloat) LessThan(n MFloat) bool { return m.Cmp(n) < 0 && !m.IsNaN() && !n.IsNaN() }

func (m MFloat) LessOrEqualTo(n MFloat) bool { return m.Cmp(n) <= 0 && !m.IsNaN() && !n.IsNaN() }

// Add returns m + n.
//
// Level i starts out holding the i-th component of each operand. The levels
// are folded by accumulate and the result is renormalized. With k == 2 this
// is: (s, e) = TwoSum(x0, y0); c = (x1 + y1) + e; (z0, z1) = TwoSum(s, c).
func (m MFloat) Add(n MFloat) MFloat {
	k := max(m.terms(), n.terms())
	if s := m.x[0] + n.x[0]; !isFinite(s) {
		return MFloatFrom64(k, s)
	}

	var storage [MaxTerms][2 * MaxTerms]float64
	var levels [MaxTerms][]float64
	for i := 0; i < k; i++ {
		levels[i] = append(storage[i][:0], m.x[i], n.x[i])
	}
	return fold(k, levels[:k])
}

// Sub returns m - n.
func (m MFloat) Sub(n MFloat) MFloat {
	return m.Add(n.Neg())
}

// Mul returns m * n.
//
// Every pair of components (i, j) with i+j < k contributes TwoProd(x_i, y_j):
// the product goes to level i+j and its error to level i+j+1. Pairs are
// visited in row-major order. Anything that would land on level k or beyond
// is discarded; a fixed precision ceiling, not unbounded term growth.
func (m MFloat) Mul(n MFloat) MFloat {
	k := max(m.terms(), n.terms())
	if p := m.x[0] * n.x[0]; !isFinite(p) {
		return MFloatFrom64(k, p)
	}

	var storage [MaxTerms][4 * MaxTerms]float64
	var levels [MaxTerms][]float64
	for i := 0; i < k; i++ {
		levels[i] = storage[i][:0]
	}
	for i := 0; i < k; i++ {
		for j := 0; i+j < k; j++ {
			p, e := TwoProd(m.x[i], n.x[j])
			levels[i+j] = append(levels[i+j], p)
			if i+j+1 < k {
				levels[i+j+1] = append(levels[i+j+1], e)
			}
		}
	}
	return fold(k, levels[:k])
}

// Quo returns m / n, refined from the float64 quotient of the leading terms by
// k correction steps; there is no convergence test.
//
// A zero divisor returns an error wrapping ErrDivisionByZero. A NaN operand
// produces a NaN result and no error. An infinite operand produces the
// float64 quotient of the leading terms.
func (m MFloat) Quo(n MFloat) (MFloat, error) {
	k := max(m.terms(), n.terms())
	if n.x[0] == 0 {
		return MFloatFrom64(k, 0), fmt.Errorf("xfloat: %v / %v: %w", m, n, ErrDivisionByZero)
	}

	q := MFloatFrom64(k, m.x[0]/n.x[0])
	if !isFinite(q.x[0]) || !isFinite(n.x[0]) {
		return q, nil
	}

	for i := 0; i < k; i++ {
		r := m.Sub(q.Mul(n))
		q = q.Add(MFloatFrom64(k, r.x[0]/n.x[0]))
	}
	return q, nil
}

// Sqrt returns the square root of m, refined from math.Sqrt of the leading
// term by k Heron steps; there is no convergence test.
//
// A negative m returns an error wrapping ErrInvalidOperation. Zero (of either
// sign), +Inf and NaN are returned as math.Sqrt would return them.
func (m MFloat) Sqrt() (MFloat, error) {
	k := m.terms()
	if m.x[0] < 0 {
		return MFloatFrom64(k, 0), fmt.Errorf("xfloat: sqrt(%v): %w", m, ErrInvalidOperation)
	}

	y := MFloatFrom64(k, math.Sqrt(m.x[0]))
	if m.x[0] == 0 || !isFinite(m.x[0]) {
		return y, nil
	}

	for i := 0; i < k; i++ {
		r := m.Sub(y.Mul(y))
		y = y.Add(MFloatFrom64(k, r.x[0]/(2*y.x[0])))
	}
	return y, nil
}

func fold(k int, levels [][]float64) MFloat {
	var sums [MaxTerms]float64
	accumulate(sums[:k], levels)

	out := MFloat{k: uint8(k)}
	renormalize(out.x[:k], sums[:k])
	return out
}
