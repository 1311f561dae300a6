package xfloat

// Go allows an implementation to fuse x*y + z into a single FMA on some
// architectures (arm64, ppc64le, s390x, ...). That would silently turn the
// routines in this file into something that is no longer error-free, so every
// product that feeds an addition is forced through an explicit float64
// conversion, which the compiler must round and may not fuse across.

// splitter is 2^27 + 1. Multiplying by it lets Split recover the top 26 bits
// of the mantissa.
const splitter = 134217729.0

// Split partitions a into hi + lo where hi holds the leading 26 significant
// bits and lo holds the remaining 27 (the sign of lo absorbs the extra bit).
// hi + lo == a exactly, and both halves can be squared without losing bits.
//
// Adapted from Veltkamp via Dekker, "A floating-point technique for extending
// the available precision" (1971). Inputs larger than ~2^996 overflow in the
// intermediate product.
func Split(a float64) (hi, lo float64) {
	c := float64(splitter * a)
	hi = c - (c - a)
	lo = a - hi
	return hi, lo
}

// TwoProdDekker computes the same result as TwoProd without a fused
// multiply-add, using Split. The two agree bit-for-bit for all finite inputs
// whose split products do not overflow or underflow.
func TwoProdDekker(a, b float64) (p, e float64) {
	p = a * b
	ahi, alo := Split(a)
	bhi, blo := Split(b)

	e = float64(ahi*bhi) - p
	e += float64(ahi * blo)
	e += float64(alo * bhi)
	e += float64(alo * blo)
	return p, e
}
