// Package oracle measures the error of float64 expansions against exact
// math/big references.
//
// Anything exposing its components leading term first satisfies Expansion,
// including xfloat.DD, xfloat.MFloat and Float64.
package oracle

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// ErrNotFinite is returned when an expansion or reference holds an Inf or NaN,
// which has no exact big.Float error.
var ErrNotFinite = errors.New("oracle: value is not finite")

// Expansion is an unevaluated sum of float64 components.
type Expansion interface {
	Components() []float64
}

// Float64 lifts a plain float64 into a one-component Expansion, so ordinary
// hardware results can sit in the same table as extended ones.
type Float64 float64

func (f Float64) Components() []float64 { return []float64{float64(f)} }

// Sum returns the exact sum of the components of e. The precision is chosen
// from the exponent span of the components, so no rounding takes place.
func Sum(e Expansion) (*big.Float, error) {
	xs := e.Components()
	var top, bottom int
	var found bool
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("oracle: component %v: %w", x, ErrNotFinite)
		}
		if x == 0 {
			continue
		}
		ex := math.Ilogb(x)
		if !found {
			top, bottom, found = ex, ex, true
		}
		top, bottom = max(top, ex), min(bottom, ex)
	}

	prec := uint(64)
	if found {
		prec = uint(top-bottom) + 53 + 64
	}

	out := new(big.Float).SetPrec(prec)
	var t big.Float
	for _, x := range xs {
		out.Add(out, t.SetFloat64(x))
	}
	return out, nil
}

// AbsError returns |sum(e) - ref|.
func AbsError(e Expansion, ref *big.Float) (*big.Float, error) {
	if ref.IsInf() {
		return nil, fmt.Errorf("oracle: reference %v: %w", ref, ErrNotFinite)
	}
	s, err := Sum(e)
	if err != nil {
		return nil, err
	}
	d := new(big.Float).SetPrec(max(s.Prec(), ref.Prec()) + 64)
	d.Sub(s, ref)
	return d.Abs(d), nil
}

// RelError returns |sum(e) - ref| / |ref| rounded to a float64. If ref is zero
// the result is 0 for an exact match and +Inf otherwise.
func RelError(e Expansion, ref *big.Float) (float64, error) {
	abs, err := AbsError(e, ref)
	if err != nil {
		return 0, err
	}
	if ref.Sign() == 0 {
		if abs.Sign() == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}
	var rel big.Float
	rel.SetPrec(64).Quo(abs, new(big.Float).Abs(ref))
	f, _ := rel.Float64()
	return f, nil
}

// Digits returns the number of correct significant decimal digits of e,
// -log10(RelError). An exact result has +Inf digits.
func Digits(e Expansion, ref *big.Float) (float64, error) {
	rel, err := RelError(e, ref)
	if err != nil {
		return 0, err
	}
	if rel == 0 {
		return math.Inf(1), nil
	}
	return -math.Log10(rel), nil
}

// Entry is a named value to compare against a reference.
type Entry struct {
	Name  string
	Value Expansion
}

// Row is one line of a comparison table.
type Row struct {
	Name     string
	Value    *big.Float
	AbsError *big.Float
	RelError float64
	Digits   float64
}

// Compare measures every entry against ref, in order.
func Compare(ref *big.Float, entries ...Entry) ([]Row, error) {
	rows := make([]Row, 0, len(entries))
	for _, en := range entries {
		v, err := Sum(en.Value)
		if err != nil {
			return nil, fmt.Errorf("oracle: entry %q: %w", en.Name, err)
		}
		abs, err := AbsError(en.Value, ref)
		if err != nil {
			return nil, fmt.Errorf("oracle: entry %q: %w", en.Name, err)
		}
		rel, _ := RelError(en.Value, ref)
		digits, _ := Digits(en.Value, ref)
		rows = append(rows, Row{
			Name:     en.Name,
			Value:    v,
			AbsError: abs,
			RelError: rel,
			Digits:   digits,
		})
	}
	return rows, nil
}
