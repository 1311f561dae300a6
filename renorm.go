package xfloat

import (
	"cmp"
	"math"
	"slices"
)

// Renormalize turns any multiset of float64 components into the canonical k
// term expansion of their sum: descending in magnitude, pairwise
// non-overlapping (|x[i+1]| <= ulp(x[i])/2) and zero only at the tail.
// Components that fall below the k-th slot are discarded.
//
// The pass structure is fixed so that results are reproducible bit-for-bit:
//
//  1. Zeros are dropped and the remaining components are stable-sorted by
//     descending magnitude.
//  2. A bottom-up sweep runs TwoSum from the last component to the first,
//     carrying the rounded sum upwards and leaving each error in place.
//  3. A top-down sweep runs TwoSum from the first component to the last,
//     emitting the running sum whenever the error is non-zero and continuing
//     with the error. Exact absorptions therefore vanish.
//  4. Steps 2 and 3 repeat until the result is non-overlapping, for at most
//     len(terms)+1 rounds.
//
// If any component is non-finite, or the sum overflows, the result is the
// plain float64 sum of terms in a single leading component, so Inf and NaN
// propagate the way they would in float64 arithmetic.
//
// k must be at least 1.
func Renormalize(k int, terms []float64) []float64 {
	if k < 1 {
		panic("xfloat: renormalize needs at least one output term")
	}
	out := make([]float64, k)
	renormalize(out, terms)
	return out
}

func renormalize(dst, terms []float64) {
	for i := range dst {
		dst[i] = 0
	}

	var buf [4 * MaxTerms]float64
	t := buf[:0]
	for _, v := range terms {
		if !isFinite(v) {
			dst[0] = plainSum(terms)
			return
		}
		if v != 0 {
			t = append(t, v)
		}
	}
	if len(t) == 0 {
		dst[0] = plainSum(terms) // keeps the sign of an all-negative-zero sum
		return
	}

	slices.SortStableFunc(t, func(a, b float64) int {
		return cmp.Compare(math.Abs(b), math.Abs(a))
	})

	for round, rounds := 0, len(t)+1; round < rounds; round++ {
		n := len(t)

		s := t[n-1]
		for i := n - 2; i >= 0; i-- {
			s, t[i+1] = TwoSum(t[i], s)
		}
		t[0] = s

		m := 0
		for i := 1; i < n; i++ {
			var e float64
			s, e = TwoSum(s, t[i])
			if e != 0 {
				t[m] = s
				m++
				s = e
			}
		}
		t[m] = s
		t = t[:m+1]

		if isNormalized(t) {
			break
		}
	}

	copy(dst, t)
	for _, v := range dst {
		if !isFinite(v) {
			for i := range dst {
				dst[i] = 0
			}
			dst[0] = plainSum(terms)
			return
		}
	}
}

func plainSum(terms []float64) (s float64) {
	for i, v := range terms {
		if i == 0 {
			s = v
		} else {
			s += v
		}
	}
	return s
}

// accumulate folds terms grouped by level into one component per level.
// Level i holds terms whose weight is roughly 2^(-53*i) of the leading term.
//
// Levels 0 to k-2 are folded with a TwoSum cascade in insertion order, and
// every error is appended to the next level. The last level is folded with
// plain float64 addition: whatever its errors would have contributed lies
// past the precision of a k term result and is discarded on purpose.
//
// The result is not normalized; it is the input to renormalize.
func accumulate(dst []float64, levels [][]float64) {
	k := len(dst)
	for i := 0; i < k; i++ {
		lv := levels[i]
		if len(lv) == 0 {
			dst[i] = 0
			continue
		}
		acc := lv[0]
		for _, v := range lv[1:] {
			if i < k-1 {
				var e float64
				acc, e = TwoSum(acc, v)
				levels[i+1] = append(levels[i+1], e)
			} else {
				acc += v
			}
		}
		dst[i] = acc
	}
}
