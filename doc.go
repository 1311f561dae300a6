/*
Package xfloat provides extended-precision floating point types built from
ordinary float64 arithmetic: DD (double-double, ~106 bits) and MFloat (a k term
expansion, ~k*53 bits for k up to MaxTerms), along with the error-free
transformations they are made of.

DD and MFloat are value types; all operations return new, normalized values.

Simple example:

	a := xfloat.DDFrom64(1)
	b := xfloat.DDFrom64(1e-20)
	fmt.Println(a.Add(b))
	// Output: 1.00000000000000000001

	m, _ := xfloat.MFloatFrom64(4, 2).Sqrt()
	fmt.Println(m.Components())

DD and MFloat can be created from a variety of sources:

	DDFrom64(v float64) DD
	DDFromParts(value, correction float64) DD
	DDFromBigFloat(b *big.Float) (out DD, accurate bool)
	DDFromString(s string) (out DD, err error)

	MFloatFrom64(k int, v float64) MFloat
	MFloatFromParts(k int, value, correction float64) MFloat
	MFloatFromComponents(k int, xs ...float64) MFloat
	MFloatFromBigFloat(k int, b *big.Float) (out MFloat, accurate bool)
	MFloatFromString(k int, s string) (out MFloat, err error)

Quo and Sqrt return an error wrapping ErrDivisionByZero or ErrInvalidOperation
for a zero divisor or a negative radicand. NaN inputs are not an error; they
produce NaN.

Every value exposes its components, leading term first, via Components(), and
its exact value via AsBigFloat(). Package oracle uses these to measure error
against math/big references.

DD and MFloat support the following formatting and marshalling interfaces:

	- fmt.Formatter
	- fmt.Stringer
	- json.Marshaler
	- json.Unmarshaler
	- encoding.TextMarshaler
	- encoding.TextUnmarshaler

*/
package xfloat
