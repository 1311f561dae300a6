package xfloat

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned (wrapped) by Quo when the divisor is zero.
	ErrDivisionByZero = errors.New("xfloat: division by zero")

	// ErrInvalidOperation is returned (wrapped) by Sqrt for a negative
	// radicand.
	ErrInvalidOperation = errors.New("xfloat: invalid operation")
)

// checkTerms panics if k is not a usable MFloat term count. A bad k is a
// programming error, not a runtime condition.
func checkTerms(k int) {
	if k < 1 || k > MaxTerms {
		panic(fmt.Errorf("xfloat: term count %d out of range [1, %d]", k, MaxTerms))
	}
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return f-f == 0
}
