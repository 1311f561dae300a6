package xfloat

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

// defaultTerms is the term count given to a zero-value MFloat that is
// unmarshalled from a decimal string.
const defaultTerms = 2

func formatNonFinite(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (x DD) String() string {
	if !isFinite(x.hi) {
		return formatNonFinite(x.hi)
	}
	if x.lo == 0 {
		return strconv.FormatFloat(x.hi, 'g', -1, 64)
	}
	return x.AsBigFloat().Text('g', ddDigits)
}

// Format implements fmt.Formatter. %v and %s print String(); every other verb
// is passed to big.Float.Format with the exact value of x.
func (x DD) Format(s fmt.State, c rune) {
	formatValue(s, c, x.hi, x.String, x.AsBigFloat)
}

func (x DD) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *DD) UnmarshalText(bts []byte) (err error) {
	v, err := DDFromString(string(bts))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as the array of its components, which round-trips
// exactly. Like float64, Inf and NaN cannot be encoded.
func (x DD) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{x.hi, x.lo})
}

// UnmarshalJSON accepts the array form written by MarshalJSON, or a number or
// string holding a decimal value.
func (x *DD) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '[' {
		var xs []float64
		if err := json.Unmarshal(bts, &xs); err != nil {
			return fmt.Errorf("xfloat: dd invalid JSON %q: %w", string(bts), err)
		}
		if len(xs) == 0 || len(xs) > 2 {
			return fmt.Errorf("xfloat: dd invalid JSON %q: want 1 or 2 components", string(bts))
		}
		xs = append(xs, 0)
		*x = DDFromParts(xs[0], xs[1])
		return nil
	}

	s, err := unquoteJSON(bts, "dd")
	if err != nil {
		return err
	}
	v, err := DDFromString(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (m MFloat) String() string {
	if !isFinite(m.x[0]) {
		return formatNonFinite(m.x[0])
	}
	if m.terms() == 1 || m.x[1] == 0 {
		return strconv.FormatFloat(m.x[0], 'g', -1, 64)
	}
	return m.AsBigFloat().Text('g', mDigitsPerTerm*m.terms())
}

// Format implements fmt.Formatter. %v and %s print String(); every other verb
// is passed to big.Float.Format with the exact value of m.
func (m MFloat) Format(s fmt.State, c rune) {
	formatValue(s, c, m.x[0], m.String, m.AsBigFloat)
}

func (m MFloat) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a decimal string into m, keeping m's term count. A
// zero-value MFloat receives 2 terms.
func (m *MFloat) UnmarshalText(bts []byte) (err error) {
	v, err := MFloatFromString(m.unmarshalTerms(), string(bts))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalJSON encodes m as the array of its k components, which round-trips
// exactly, including the term count.
func (m MFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.x[:m.terms()])
}

// UnmarshalJSON accepts the array form written by MarshalJSON, whose length
// sets the term count, or a number or string holding a decimal value, which
// keeps m's term count (see UnmarshalText).
func (m *MFloat) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '[' {
		var xs []float64
		if err := json.Unmarshal(bts, &xs); err != nil {
			return fmt.Errorf("xfloat: mfloat invalid JSON %q: %w", string(bts), err)
		}
		if len(xs) == 0 || len(xs) > MaxTerms {
			return fmt.Errorf("xfloat: mfloat invalid JSON %q: want 1 to %d components", string(bts), MaxTerms)
		}
		*m = MFloatFromComponents(len(xs), xs...)
		return nil
	}

	s, err := unquoteJSON(bts, "mfloat")
	if err != nil {
		return err
	}
	v, err := MFloatFromString(m.unmarshalTerms(), s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *MFloat) unmarshalTerms() int {
	if m.k == 0 {
		return defaultTerms
	}
	return int(m.k)
}

func unquoteJSON(bts []byte, kind string) (string, error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return "", fmt.Errorf("xfloat: %s invalid JSON %q", kind, string(bts))
		}
		bts = bts[1 : ln-1]
	}
	return string(bts), nil
}

func formatValue(s fmt.State, c rune, lead float64, str func() string, exact func() *big.Float) {
	switch {
	case c == 'v' || c == 's':
		_, _ = io.WriteString(s, str())
	case !isFinite(lead):
		fmt.Fprintf(s, fmt.FormatString(s, c), lead)
	default:
		exact().Format(s, c)
	}
}
