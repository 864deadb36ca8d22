package solver

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Dichotomy finds a root of f inside [a, b] by bisection.
//
// f(a) and f(b) must have opposite signs (or one of them be zero). When the
// midpoint evaluates to NaN the interval is narrowed toward whichever end
// still yields a number. The search stops once the interval is no wider than
// eps or can no longer be split in float64. On failure the condition is logged
// and 0 is returned together with an error wrapping ErrDomain (eps not
// positive), ErrInvalidBracket or ErrNaNInterval.
func Dichotomy(f func(float64) float64, a, b, eps float64) (float64, error) {
	if !(eps > 0) {
		return fail("dichotomy", a, b, math.NaN(), math.NaN(), fmt.Errorf("%w: eps=%g", ErrDomain, eps))
	}

	fa := f(a)
	fb := f(b)

	if math.IsNaN(fa) || math.IsNaN(fb) || fa*fb > 0 {
		return fail("dichotomy", a, b, fa, fb, ErrInvalidBracket)
	}

	m := (a + b) / 2
	fm := f(m)

	for math.Abs(b-a) > eps && m != a && m != b {
		switch {
		case math.IsNaN(fm):
			if !math.IsNaN(f(a)) {
				b = m
			} else if !math.IsNaN(f(b)) {
				a = m
			} else {
				return fail("dichotomy", a, b, math.NaN(), math.NaN(), ErrNaNInterval)
			}
		case fm == 0:
			return m, nil
		case fa*fm > 0:
			a, fa = m, fm
		default:
			b = m
		}

		m = (a + b) / 2
		fm = f(m)
	}

	return m, nil
}

func fail(op string, a, b, fa, fb float64, cause error) (float64, error) {
	err := &Error{Op: op, A: a, B: b, FA: fa, FB: fb, Wrapped: cause}
	log.WithFields(logrus.Fields{
		"a": a, "b": b, "fa": fa, "fb": fb,
	}).Error("dichotomy solver: ", cause)
	return 0, err
}
