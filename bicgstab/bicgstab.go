// Package bicgstab implements the unpreconditioned BiCGSTAB iteration for
// nonsymmetric linear systems Ax = b over float64.
//
// The solver always starts from x = 0 and runs a fixed number of iterations
// with no convergence test. It exists as a float64 baseline against which
// extended-precision variants can be compared, so it stops early only when
// one of its inner products is exactly zero.
package bicgstab

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("bicgstab: dimension mismatch")
	ErrIterations        = errors.New("bicgstab: iteration count must be positive")
)

// Operator is a square linear operator applied by matrix-vector product.
type Operator interface {
	Dims() (r, c int)

	// MulVecTo stores the product of the operator and x in dst. dst and x
	// never alias.
	MulVecTo(dst *mat.VecDense, x mat.Vector)
}

// Dense adapts any gonum matrix into an Operator.
type Dense struct {
	mat.Matrix
}

var _ Operator = Dense{}

func (d Dense) MulVecTo(dst *mat.VecDense, x mat.Vector) {
	dst.MulVec(d.Matrix, x)
}

type Settings struct {
	// Number of iterations to run. There is no stopping test, so this is
	// also the number of iterations performed unless a breakdown occurs.
	Iterations int

	// Logger receives per-iteration residual norms at Debug and breakdowns
	// at Warn. If nil, nothing is logged.
	Logger *zap.Logger
}

func DefaultSettings() Settings {
	return Settings{
		Iterations: 100,
	}
}

// Breakdown identifies the inner product that vanished and halted the
// iteration.
type Breakdown int

const (
	NoBreakdown Breakdown = iota

	// RhoBreakdown is <r̂, r> == 0. This is what happens straight away for a
	// zero right-hand side.
	RhoBreakdown

	// DenomBreakdown is <r̂, v> == 0.
	DenomBreakdown

	// OmegaBreakdown is <t, t> == 0. For a nonsingular operator this means
	// the intermediate residual s is zero and the half step has solved the
	// system, so x += alpha*p is applied before stopping rather than
	// returning the previous iterate.
	OmegaBreakdown
)

func (b Breakdown) String() string {
	switch b {
	case NoBreakdown:
		return "none"
	case RhoBreakdown:
		return "rho"
	case DenomBreakdown:
		return "denom"
	case OmegaBreakdown:
		return "omega"
	default:
		return fmt.Sprintf("Breakdown(%d)", int(b))
	}
}

type Result struct {
	X *mat.VecDense

	// Iterations is the number of full iterations completed. If Breakdown
	// is set, it is also the zero-based index of the iteration that broke
	// down.
	Iterations int

	Breakdown Breakdown

	// ResidualNorm is the 2-norm of the recurrence residual, which tracks
	// b - AX until rounding error catches up with it.
	ResidualNorm float64
}

// Solve runs settings.Iterations iterations of BiCGSTAB on op·x = b from a
// zero initial guess.
func Solve(op Operator, b mat.Vector, settings Settings) (Result, error) {
	r, c := op.Dims()
	n := b.Len()
	if n == 0 || r != c || r != n {
		return Result{}, fmt.Errorf("bicgstab: operator is %dx%d, rhs has length %d: %w", r, c, n, ErrDimensionMismatch)
	}
	if settings.Iterations <= 0 {
		return Result{}, fmt.Errorf("bicgstab: %d iterations: %w", settings.Iterations, ErrIterations)
	}
	log := settings.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		x    = mat.NewVecDense(n, nil)
		res  = mat.NewVecDense(n, nil)
		rhat = mat.NewVecDense(n, nil)
		p    = mat.NewVecDense(n, nil)
		v    = mat.NewVecDense(n, nil)
		s    = mat.NewVecDense(n, nil)
		t    = mat.NewVecDense(n, nil)
	)
	res.CopyVec(b)
	rhat.CopyVec(b)

	rhoPrev, alpha, omega := 1.0, 1.0, 1.0

	out := Result{X: x}
	finish := func(k int, bd Breakdown) Result {
		out.Iterations = k
		out.Breakdown = bd
		out.ResidualNorm = mat.Norm(res, 2)
		if bd != NoBreakdown {
			log.Warn("breakdown",
				zap.Stringer("kind", bd),
				zap.Int("iteration", k),
				zap.Float64("residual", out.ResidualNorm))
		}
		return out
	}

	for k := 0; k < settings.Iterations; k++ {
		rho := mat.Dot(rhat, res)
		if rho == 0 {
			return finish(k, RhoBreakdown), nil
		}

		if k == 0 {
			p.CopyVec(res)
		} else {
			beta := (rho / rhoPrev) * (alpha / omega)
			p.AddScaledVec(p, -omega, v)
			p.AddScaledVec(res, beta, p)
		}

		op.MulVecTo(v, p)
		denom := mat.Dot(rhat, v)
		if denom == 0 {
			return finish(k, DenomBreakdown), nil
		}
		alpha = rho / denom

		s.AddScaledVec(res, -alpha, v)

		op.MulVecTo(t, s)
		tt := mat.Dot(t, t)
		if tt == 0 {
			x.AddScaledVec(x, alpha, p)
			res.CopyVec(s)
			return finish(k, OmegaBreakdown), nil
		}
		omega = mat.Dot(t, s) / tt

		x.AddScaledVec(x, alpha, p)
		x.AddScaledVec(x, omega, s)
		res.AddScaledVec(s, -omega, t)
		rhoPrev = rho

		if ce := log.Check(zap.DebugLevel, "iteration"); ce != nil {
			ce.Write(zap.Int("iteration", k), zap.Float64("residual", mat.Norm(res, 2)))
		}
	}

	return finish(settings.Iterations, NoBreakdown), nil
}
