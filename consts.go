package xfloat

const (
	// MaxTerms is the largest supported MFloat term count, giving roughly
	// 8*53 = 424 bits of significand.
	MaxTerms = 8

	// ddRefineSteps is the fixed number of correction steps applied after the
	// float64 seed in DD.Quo and DD.Sqrt. Each step adds roughly 53 correct
	// bits; there is no convergence test.
	ddRefineSteps = 2

	// ddDigits is the number of significant decimal digits printed by
	// DD.String; 106 bits is a little under 32 digits.
	ddDigits = 32

	// mDigitsPerTerm is the same for each MFloat term.
	mDigitsPerTerm = 16
)

var (
	zeroDD DD
)
