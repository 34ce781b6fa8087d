package pricing

import (
	"errors"
	"math"
)

var (
	// ErrNoBracket means f(a) and f(b) do not have opposite signs.
	ErrNoBracket = errors.New("root is not bracketed")
	// ErrNoConvergence means the iteration cap was hit before the
	// bracket shrank below the tolerance.
	ErrNoConvergence = errors.New("root finder did not converge")
)

const machineEpsilon = 2.220446049250313e-16

// Brent finds a root of f inside [a, b] using the Brent-Dekker method:
// inverse quadratic interpolation or secant steps when they make good
// progress, bisection otherwise. f(a) and f(b) must have opposite signs.
//
// Parameters:
//   - f: continuous function to solve f(x) = 0
//   - a, b: bracket endpoints
//   - tol: absolute tolerance on x
//   - maxIter: upper bound on evaluations of f after the two endpoints
//
// Returns:
//   - the root estimate
//   - ErrNoBracket if the endpoints do not straddle a root (or f is NaN there)
//   - ErrNoConvergence together with the last estimate if maxIter runs out
func Brent(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa, fb := f(a), f(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, ErrNoBracket
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, ErrNoBracket
	}

	// b is the best estimate, a the previous one, c the contrapoint
	// keeping the root between b and c.
	c, fc := b, fb
	var d, e float64

	for i := 0; i < maxIter; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*machineEpsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		switch {
		case math.Abs(d) > tol1:
			b += d
		case xm > 0:
			b += tol1
		default:
			b -= tol1
		}
		fb = f(b)
		if math.IsNaN(fb) {
			return b, ErrNoConvergence
		}
	}

	return b, ErrNoConvergence
}
