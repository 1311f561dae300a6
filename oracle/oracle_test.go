package oracle_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	xfloat "github.com/shabbyrobe/go-xfloat"
	"github.com/shabbyrobe/go-xfloat/oracle"
	"github.com/shabbyrobe/golib/assert"
)

func TestSumExact(t *testing.T) {
	tt := assert.WrapTB(t)

	// 1 + 2^-200 needs far more than 53 bits.
	tiny := math.Ldexp(1, -200)
	s, err := oracle.Sum(xfloat.MFloatFromComponents(2, 1, tiny))
	tt.MustOK(err)

	exp := new(big.Float).SetPrec(512).SetFloat64(1)
	exp.Add(exp, new(big.Float).SetFloat64(tiny))
	tt.MustAssert(s.Cmp(exp) == 0, "%s != %s", s.Text('g', 80), exp.Text('g', 80))
}

func TestSumZero(t *testing.T) {
	tt := assert.WrapTB(t)
	s, err := oracle.Sum(xfloat.DD{})
	tt.MustOK(err)
	tt.MustExact(0, s.Sign())
}

func TestSumNotFinite(t *testing.T) {
	tt := assert.WrapTB(t)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := oracle.Sum(oracle.Float64(v))
		tt.MustAssert(errors.Is(err, oracle.ErrNotFinite))
	}
}

func TestRelError(t *testing.T) {
	tt := assert.WrapTB(t)

	ref := new(big.Float).SetPrec(200).SetInt64(1)
	ref.Quo(ref, new(big.Float).SetPrec(200).SetInt64(3))

	f64 := oracle.Float64(1.0 / 3)
	dd, err := xfloat.DDFrom64(1).Quo(xfloat.DDFrom64(3))
	tt.MustOK(err)

	frel, err := oracle.RelError(f64, ref)
	tt.MustOK(err)
	drel, err := oracle.RelError(dd, ref)
	tt.MustOK(err)

	tt.MustAssert(frel > 0 && frel <= 0x1p-53, "float64 rel error %g", frel)
	tt.MustAssert(drel <= 0x1p-104, "dd rel error %g", drel)

	fd, err := oracle.Digits(f64, ref)
	tt.MustOK(err)
	tt.MustAssert(fd > 15 && fd < 18, "float64 digits %g", fd)
}

func TestRelErrorZeroRef(t *testing.T) {
	tt := assert.WrapTB(t)
	zero := new(big.Float)

	rel, err := oracle.RelError(oracle.Float64(0), zero)
	tt.MustOK(err)
	tt.MustExact(0.0, rel)

	rel, err = oracle.RelError(oracle.Float64(1e-300), zero)
	tt.MustOK(err)
	tt.MustAssert(math.IsInf(rel, 1))

	digits, err := oracle.Digits(oracle.Float64(0), zero)
	tt.MustOK(err)
	tt.MustAssert(math.IsInf(digits, 1))
}

func TestCompare(t *testing.T) {
	tt := assert.WrapTB(t)

	x, y := 1.24, 3.56
	dd, err := xfloat.DDFrom64(x).Quo(xfloat.DDFrom64(y))
	tt.MustOK(err)

	// The reference is the quotient of the binary values, not of 1.24 and 3.56.
	ref := new(big.Float).SetPrec(300)
	ref.Quo(new(big.Float).SetPrec(300).SetFloat64(x), new(big.Float).SetPrec(300).SetFloat64(y))

	rows, err := oracle.Compare(ref,
		oracle.Entry{Name: "float", Value: oracle.Float64(x / y)},
		oracle.Entry{Name: "dd", Value: dd},
	)
	tt.MustOK(err)
	tt.MustExact(2, len(rows))
	tt.MustExact("float", rows[0].Name)
	tt.MustExact("dd", rows[1].Name)
	tt.MustAssert(rows[1].RelError < rows[0].RelError*1e-10)
	tt.MustAssert(rows[1].Digits > 30, "dd digits %g", rows[1].Digits)
	tt.MustAssert(rows[0].AbsError.Cmp(rows[1].AbsError) > 0)
}

func TestCompareNotFinite(t *testing.T) {
	tt := assert.WrapTB(t)
	_, err := oracle.Compare(big.NewFloat(1), oracle.Entry{Name: "nan", Value: oracle.Float64(math.NaN())})
	tt.MustAssert(errors.Is(err, oracle.ErrNotFinite))
}
