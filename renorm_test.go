package xfloat

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shabbyrobe/golib/assert"
)

func TestRenormalize(t *testing.T) {
	for idx, tc := range []struct {
		k   int
		in  []float64
		out []float64
	}{
		{1, nil, []float64{0}},
		{3, []float64{0, 0}, []float64{0, 0, 0}},
		{2, []float64{1, 1e-20}, []float64{1, 1e-20}},
		{2, []float64{1e-20, 1}, []float64{1, 1e-20}},
		{3, []float64{1e-40, 1e-20, 1}, []float64{1, 1e-20, 1e-40}},
		{4, []float64{1, 1e-20, 1e-20, 0}, []float64{1, 2e-20, 0, 0}},
		{2, []float64{1, -1, 1e-30}, []float64{1e-30, 0}},
		{2, []float64{0.1, 0.2}, []float64{0.30000000000000004, -2.7755575615628914e-17}},
		{3, []float64{1, 1, 1}, []float64{3, 0, 0}},
		{2, []float64{1, math.Ldexp(1, -53)}, []float64{1, math.Ldexp(1, -53)}},
		{2, []float64{math.Ldexp(1, -53), math.Ldexp(1, -53), 1}, []float64{1 + math.Ldexp(1, -52), 0}},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt := assert.WrapTB(t)
			out := Renormalize(tc.k, tc.in)
			if diff := cmp.Diff(tc.out, out); diff != "" {
				t.Fatal(diff)
			}
			tt.MustAssert(isNormalized(out))
		})
	}
}

func TestRenormalizePanicsOnBadK(t *testing.T) {
	tt := assert.WrapTB(t)
	assertPanics(tt, func() { Renormalize(0, []float64{1}) })
}

func TestRenormalizeNonFinite(t *testing.T) {
	tt := assert.WrapTB(t)

	out := Renormalize(3, []float64{1, math.Inf(1), 1e-20})
	tt.MustAssert(math.IsInf(out[0], 1))
	tt.MustExact(0.0, out[1])
	tt.MustExact(0.0, out[2])

	out = Renormalize(2, []float64{math.Inf(1), math.Inf(-1)})
	tt.MustAssert(math.IsNaN(out[0]))

	out = Renormalize(2, []float64{math.MaxFloat64, math.MaxFloat64})
	tt.MustAssert(math.IsInf(out[0], 1))
	tt.MustExact(0.0, out[1])
}

func TestRenormalizeNegativeZero(t *testing.T) {
	tt := assert.WrapTB(t)
	negz := math.Copysign(0, -1)
	out := Renormalize(2, []float64{negz, negz})
	tt.MustAssert(math.Signbit(out[0]))
}

// TestRenormalizeRandom feeds overlapping, unordered components of wildly
// different magnitudes and checks that the result is normalized and as close
// to the exact sum as k terms allow.
func TestRenormalizeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(globalRNG.Int63()))

	for _, k := range []int{1, 2, 3, 4, 6, MaxTerms} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			tt := assert.WrapTB(t)
			for i := 0; i < 2000; i++ {
				n := rng.Intn(3*MaxTerms) + 1
				in := make([]float64, n)
				lead := rng.Intn(200) - 100
				for j := range in {
					in[j] = (rng.Float64()*2 - 1) * math.Ldexp(1, lead-rng.Intn(8*53))
					if rng.Intn(10) == 0 && j > 0 {
						in[j] = -in[j-1]
					}
				}

				out := Renormalize(k, in)
				tt.MustExact(k, len(out))
				tt.MustAssert(isNormalized(out), "failed at index %d: %v -> %v", i, in, out)

				exact := exactSum(in...)
				got := exactSum(out...)
				if exact.Sign() == 0 {
					tt.MustAssert(got.Sign() == 0, "failed at index %d: %v -> %v", i, in, out)
					continue
				}
				rel := relErr(got, exact)
				limit := math.Ldexp(1, -53*k+2)
				tt.MustAssert(rel <= limit, "failed at index %d: error %g > %g", i, rel, limit)
			}
		})
	}
}

// TestRenormalizeExactWhenWide checks that nothing is lost when k is large
// enough to hold every input.
func TestRenormalizeExactWhenWide(t *testing.T) {
	tt := assert.WrapTB(t)
	rng := rand.New(rand.NewSource(globalRNG.Int63()))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(3) + 1
		in := make([]float64, n)
		for j := range in {
			in[j] = (rng.Float64()*2 - 1) * math.Ldexp(1, rng.Intn(400)-200)
		}
		out := Renormalize(MaxTerms, in)
		tt.MustAssert(exactSum(in...).Cmp(exactSum(out...)) == 0, "failed at index %d: %v -> %v", i, in, out)
	}
}

func TestRenormalizeIdempotent(t *testing.T) {
	source := &rando{rng: rand.New(rand.NewSource(globalRNG.Int63()))}
	for _, k := range []int{2, 3, 4} {
		for i := 0; i < 2000; i++ {
			xs := source.Expansion(k)
			if diff := cmp.Diff(xs, Renormalize(k, xs)); diff != "" {
				t.Fatalf("k=%d index %d: %s", k, i, diff)
			}
			source.Clear()
		}
	}
}

func TestAccumulate(t *testing.T) {
	tt := assert.WrapTB(t)

	// Errors cascade to the next level; the last level is a plain sum.
	var levels [3][]float64
	levels[0] = []float64{1, 1e-20}
	levels[1] = []float64{1e-40}
	levels[2] = []float64{1e-60, 1e-80}

	var dst [3]float64
	accumulate(dst[:], levels[:])
	tt.MustEqual([3]float64{1, 1e-20, 1e-40}, dst)
	tt.MustExact(3, len(levels[2]))

	exp := new(big.Float).SetPrec(400)
	for _, v := range []float64{1e-20, 1e-40} {
		exp.Add(exp, new(big.Float).SetFloat64(v))
	}
	got := exactSum(levels[1]...)
	tt.MustAssert(exp.Cmp(got) == 0)
}

func TestULP(t *testing.T) {
	for idx, tc := range []struct {
		in, out float64
	}{
		{1, math.Ldexp(1, -52)},
		{-1, math.Ldexp(1, -52)},
		{1.5, math.Ldexp(1, -52)},
		{2, math.Ldexp(1, -51)},
		{math.MaxFloat64, math.Ldexp(1, 971)},
		{math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64},
		{0, math.SmallestNonzeroFloat64},
		{math.Ldexp(1, -1022), math.SmallestNonzeroFloat64},
		{math.Ldexp(1, -1021), math.Ldexp(1, -1073)},
		{math.Inf(1), math.Inf(1)},
	} {
		t.Run(fmt.Sprintf("%d/%g", idx, tc.in), func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustExact(tc.out, ulp(tc.in))
		})
	}
	tt := assert.WrapTB(t)
	tt.MustAssert(math.IsInf(ulp(math.NaN()), 1))
}

func TestNonOverlapping(t *testing.T) {
	tt := assert.WrapTB(t)
	tt.MustAssert(nonOverlapping(1, 0))
	tt.MustAssert(nonOverlapping(0, 0))
	tt.MustAssert(!nonOverlapping(0, 1e-300))
	tt.MustAssert(nonOverlapping(1, math.Ldexp(1, -53)))
	tt.MustAssert(nonOverlapping(1, -math.Ldexp(1, -53)))
	tt.MustAssert(!nonOverlapping(1, math.Nextafter(math.Ldexp(1, -53), 1)))
	tt.MustAssert(nonOverlapping(math.Ldexp(1, -1000), math.SmallestNonzeroFloat64))
	tt.MustAssert(!nonOverlapping(math.Ldexp(1, -1070), math.SmallestNonzeroFloat64))

	tt.MustAssert(isNormalized([]float64{1, 1e-20, 0, 0}))
	tt.MustAssert(!isNormalized([]float64{1, 0, 1e-40}))
	tt.MustAssert(!isNormalized([]float64{1e-20, 1}))
}
