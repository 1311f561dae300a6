package xfloat

import (
	"fmt"
	"math"
	"math/big"
)

// parsePrec is the working precision used when parsing strings. It comfortably
// exceeds MaxTerms*53 so the parse itself does not limit the result.
const parsePrec = 64*MaxTerms + 64

func parseBigFloat(s string) (*big.Float, error) {
	b, _, err := big.ParseFloat(s, 0, parsePrec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("xfloat: float string %q invalid: %w", s, err)
	}
	return b, nil
}

// splitBigFloat greedily peels float64s off b into out, nearest first, and
// reports whether the whole of b was consumed. Each component is the float64
// nearest to what remains, so the result is normalized.
func splitBigFloat(b *big.Float, out []float64) (exact bool) {
	for i := range out {
		out[i] = 0
	}
	if b.IsInf() {
		out[0] = math.Inf(b.Sign())
		return true
	}

	prec := b.Prec()
	if prec < 64 {
		prec = 64
	}

	// The remainder always fits in b's own precision: subtracting the leading
	// float64 can only clear high bits.
	rem := new(big.Float).SetPrec(prec).Set(b)
	var f big.Float
	for i := range out {
		v, _ := rem.Float64()
		if math.IsInf(v, 0) {
			out[i] = v
			return false
		}
		out[i] = v
		rem.Sub(rem, f.SetFloat64(v))
		if rem.Sign() == 0 {
			return true
		}
	}
	return false
}

// intoBigFloat sets b to the exact sum of xs.
func intoBigFloat(b *big.Float, xs ...float64) {
	if len(xs) == 0 {
		b.SetPrec(53).SetFloat64(0)
		return
	}
	if !isFinite(xs[0]) {
		b.SetPrec(53).SetFloat64(xs[0])
		return
	}
	b.SetPrec(exactPrec(xs)).SetFloat64(xs[0])

	var t big.Float
	for _, x := range xs[1:] {
		if x == 0 {
			continue
		}
		b.Add(b, t.SetFloat64(x))
	}
}
