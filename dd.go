package xfloat

import (
	"fmt"
	"math"
	"math/big"
)

// DD is a double-double: the unevaluated sum hi + lo of two float64s, where
// |lo| <= ulp(hi)/2. It carries roughly 106 bits of significand but keeps the
// exponent range of a float64.
//
// DD is a value type; all operations return new, normalized values. The zero
// value is 0.
type DD struct {
	hi float64
	lo float64
}

// DDFrom64 lifts a float64 into a DD with a zero correction term.
func DDFrom64(v float64) DD { return DD{hi: v} }

// DDFromParts creates a DD from a value and a correction term of any
// magnitude. The pair is normalized, so DDFromParts(v, 0) == DDFrom64(v).
func DDFromParts(value, correction float64) DD {
	if correction == 0 {
		return DD{hi: value}
	}
	return mkDD(TwoSum(value, correction))
}

// DDFromBigFloat creates the DD nearest to b. If b cannot be represented
// exactly (it has more than ~106 significant bits, or it is outside the
// float64 range), accurate is false.
func DDFromBigFloat(b *big.Float) (out DD, accurate bool) {
	var xs [2]float64
	accurate = splitBigFloat(b, xs[:])
	return mkDD(xs[0], xs[1]), accurate
}

// DDFromString parses a decimal or hexadecimal floating point string (any
// format accepted by big.Float.Parse with base 0) and returns the nearest DD.
func DDFromString(s string) (out DD, err error) {
	b, err := parseBigFloat(s)
	if err != nil {
		return out, err
	}
	out, _ = DDFromBigFloat(b)
	return out, nil
}

// mkDD is the last step of every operation: an overflowed or NaN leading
// term takes the place of the whole value.
func mkDD(hi, lo float64) DD {
	if !isFinite(hi) {
		return DD{hi: hi}
	}
	return DD{hi: hi, lo: lo}
}

func (x DD) IsZero() bool { return x.hi == 0 }

func (x DD) IsNaN() bool { return x.hi != x.hi }

// IsInf reports whether x is an infinity, according to sign. See math.IsInf.
func (x DD) IsInf(sign int) bool { return math.IsInf(x.hi, sign) }

// Raw returns the leading and trailing components of x.
func (x DD) Raw() (hi, lo float64) { return x.hi, x.lo }

// Components returns the components of x, leading term first.
func (x DD) Components() []float64 { return []float64{x.hi, x.lo} }

// AsFloat64 returns x rounded to the nearest float64.
func (x DD) AsFloat64() float64 { return x.hi + x.lo }

// AsMFloat converts x into an MFloat with k terms. k == 1 drops the
// correction term.
func (x DD) AsMFloat(k int) MFloat {
	return MFloatFromComponents(k, x.hi, x.lo)
}

// IntoBigFloat sets b to the exact value of x, adjusting b's precision as
// required, so that memory can be retained and recycled. It panics with
// big.ErrNaN if x is NaN.
func (x DD) IntoBigFloat(b *big.Float) {
	intoBigFloat(b, x.hi, x.lo)
}

// AsBigFloat allocates a new big.Float holding the exact value of x. It
// panics with big.ErrNaN if x is NaN.
func (x DD) AsBigFloat() *big.Float {
	b := new(big.Float)
	intoBigFloat(b, x.hi, x.lo)
	return b
}

func (x DD) Sign() int {
	if x.hi > 0 {
		return 1
	} else if x.hi < 0 {
		return -1
	}
	return 0
}

func (x DD) Neg() DD { return DD{hi: -x.hi, lo: -x.lo} }

func (x DD) Abs() DD {
	if math.Signbit(x.hi) {
		return x.Neg()
	}
	return x
}

// Cmp compares x and y and returns -1, 0 or +1. Normalized DDs have a unique
// representation, so the comparison is made component by component. The
// result is 0 if either value is NaN.
func (x DD) Cmp(y DD) int {
	if x.IsNaN() || y.IsNaN() {
		return 0
	}
	if x.hi < y.hi {
		return -1
	} else if x.hi > y.hi {
		return 1
	} else if x.lo < y.lo {
		return -1
	} else if x.lo > y.lo {
		return 1
	}
	return 0
}

func (x DD) Equal(y DD) bool { return x.hi == y.hi && x.lo == y.lo }

func (x DD) GreaterThan(y DD) bool { return x.Cmp(y) > 0 && !x.IsNaN() && !y.IsNaN() }

func (x DD) GreaterOrEqualTo(y DD) bool { return x.Cmp(y) >= 0 && !x.IsNaN() && !y.IsNaN() }

func (x DD) LessThan(y DD) bool { return x.Cmp(y) < 0 && !x.IsNaN() && !y.IsNaN() }

func (x DD) LessOrEqualTo(y DD) bool { return x.Cmp(y) <= 0 && !x.IsNaN() && !y.IsNaN() }

// Add returns x + y.
//
// The order of operations is fixed: the leading and trailing pairs are each
// summed with TwoSum, the leading error absorbs the trailing sum, the pair is
// renormalized, the trailing error is absorbed, and the pair is renormalized
// again. Reassociating any of these steps changes the low-order bit of the
// result for some inputs.
//
// A non-finite leading sum is returned on its own.
func (x DD) Add(y DD) DD {
	s, e := TwoSum(x.hi, y.hi)
	if !isFinite(s) {
		return DD{hi: s}
	}
	t, f := TwoSum(x.lo, y.lo)
	e += t
	s, e = TwoSum(s, e)
	e += f
	return mkDD(TwoSum(s, e))
}

// Sub returns x - y.
func (x DD) Sub(y DD) DD {
	return x.Add(y.Neg())
}

// Mul returns x * y. The cross terms and the error of the leading product are
// accumulated into a single correction which is folded in with one final
// TwoSum; the lo*lo term is below the precision of the result.
func (x DD) Mul(y DD) DD {
	p, e := TwoProd(x.hi, y.hi)
	if !isFinite(p) {
		return DD{hi: p}
	}
	e += float64(x.hi*y.lo) + float64(x.lo*y.hi)
	return mkDD(TwoSum(p, e))
}

// Quo returns x / y. The float64 quotient of the leading terms is refined by
// a fixed number of correction steps; there is no convergence test.
//
// A zero divisor returns an error wrapping ErrDivisionByZero. A NaN operand
// produces a NaN result and no error. An infinite operand produces the
// float64 quotient of the leading terms.
func (x DD) Quo(y DD) (DD, error) {
	if y.hi == 0 {
		return zeroDD, fmt.Errorf("xfloat: %v / %v: %w", x, y, ErrDivisionByZero)
	}

	q := DD{hi: x.hi / y.hi}
	if !isFinite(q.hi) || !isFinite(y.hi) {
		return q, nil
	}

	for i := 0; i < ddRefineSteps; i++ {
		r := x.Sub(q.Mul(y))
		q = q.Add(DD{hi: r.hi / y.hi})
	}
	return q, nil
}

// Sqrt returns the square root of x. math.Sqrt of the leading term is refined
// by a fixed number of Heron steps; there is no convergence test.
//
// A negative x returns an error wrapping ErrInvalidOperation. Zero (of either
// sign), +Inf and NaN are returned as math.Sqrt would return them.
func (x DD) Sqrt() (DD, error) {
	if x.hi < 0 {
		return zeroDD, fmt.Errorf("xfloat: sqrt(%v): %w", x, ErrInvalidOperation)
	}

	y := DD{hi: math.Sqrt(x.hi)}
	if x.hi == 0 || !isFinite(x.hi) {
		return y, nil
	}

	for i := 0; i < ddRefineSteps; i++ {
		r := x.Sub(y.Mul(y))
		y = y.Add(DD{hi: r.hi / (2 * y.hi)})
	}
	return y, nil
}
