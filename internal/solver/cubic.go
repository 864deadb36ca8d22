package solver

import (
	"math"
	"sort"
)

const polishIterations = 3

// SolveCubic returns the real roots of a·x³ + b·x² + c·x + d = 0.
// Exactly three slots are returned; when only one root is real the other two
// are NaN.
//
// The largest-magnitude root comes from the closed form. The other two are
// recovered from the deflated quadratic, which keeps roots many orders of
// magnitude smaller than the first one accurate, and every root gets a few
// Newton steps on the original polynomial.
func SolveCubic(a, b, c, d float64) [3]float64 {
	b /= a
	c /= a
	d /= a

	closed := closedForm(b, c, d)

	z1 := closed[0]
	threeReal := true
	for _, r := range closed {
		if math.IsNaN(r) {
			threeReal = false
			continue
		}
		if math.Abs(r) > math.Abs(z1) {
			z1 = r
		}
	}

	// x³ + b·x² + c·x + d = (x - z1)(x² + p·x + q)
	p := b + z1
	q := c + z1*p
	if z1 != 0 {
		q = -d / z1
	}

	roots := [3]float64{z1, math.NaN(), math.NaN()}
	disc := p*p - 4*q
	if disc < 0 && threeReal {
		disc = 0
	}
	if disc >= 0 {
		t := -(p + math.Copysign(math.Sqrt(disc), p)) / 2
		if t != 0 {
			roots[1], roots[2] = t, q/t
		} else {
			roots[1], roots[2] = 0, 0
		}
	}

	for i, r := range roots {
		if !math.IsNaN(r) {
			roots[i] = polish(b, c, d, r)
		}
	}
	return roots
}

// closedForm is the Cardano / trigonometric solution of the monic cubic.
func closedForm(b, c, d float64) [3]float64 {
	q := (3*c - b*b) / 9
	r := (9*b*c - 27*d - 2*b*b*b) / 54
	disc := q*q*q + r*r
	shift := -b / 3

	var roots [3]float64

	switch {
	case disc > 0:
		sq := math.Sqrt(disc)
		s := math.Cbrt(r + sq)
		t := math.Cbrt(r - sq)
		roots[0] = shift + s + t
		roots[1] = math.NaN()
		roots[2] = math.NaN()
	case q == 0:
		// triple root
		roots[0], roots[1], roots[2] = shift, shift, shift
	default:
		cosArg := r / math.Sqrt(-q*q*q)
		cosArg = math.Max(-1, math.Min(1, cosArg))
		theta := math.Acos(cosArg)
		sqrtQ := math.Sqrt(-q)
		roots[0] = 2*sqrtQ*math.Cos(theta/3) + shift
		roots[1] = 2*sqrtQ*math.Cos((theta+2*math.Pi)/3) + shift
		roots[2] = 2*sqrtQ*math.Cos((theta+4*math.Pi)/3) + shift
	}

	return roots
}

// polish applies Newton steps to x on the monic cubic while they reduce the
// residual.
func polish(b, c, d, x float64) float64 {
	f := ((x+b)*x+c)*x + d
	for i := 0; i < polishIterations && f != 0; i++ {
		df := (3*x+2*b)*x + c
		if df == 0 {
			break
		}
		next := x - f/df
		fn := ((next+b)*next+c)*next + d
		if math.Abs(fn) >= math.Abs(f) {
			break
		}
		x, f = next, fn
	}
	return x
}

// RealRoots drops NaN slots and returns the remaining roots in ascending order.
func RealRoots(roots [3]float64) []float64 {
	out := make([]float64, 0, 3)
	for _, r := range roots {
		if !math.IsNaN(r) {
			out = append(out, r)
		}
	}
	sort.Float64s(out)
	return out
}
