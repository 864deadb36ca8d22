package table

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func is a sampled source. Returning an error or NaN omits the sample.
type Func func(x float64) (float64, error)

// Func2 is a two-argument sampled source.
type Func2 func(x, y float64) (float64, error)

// sample evaluates f, folding errors, NaN and panics into ok == false.
func sample(f Func, x float64) (y float64, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	y, err := f(x)
	if err != nil || math.IsNaN(y) {
		return 0, false
	}
	return y, true
}

// steps walks from min (inclusive) to max (exclusive) in increments of step in
// the transformed space of mode.
func steps(min, max float64, mode StepMode, step float64) []float64 {
	if step <= 0 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	var xs []float64
	for x := min; x < max; x = mode.Inverse(mode.Forward(x) + step) {
		xs = append(xs, x)
	}
	return xs
}

func populate(f Func, xs []float64) *sortedMap[float64] {
	ys := make([]float64, len(xs))
	valid := make([]bool, len(xs))
	parallelFor(len(xs), 16, func(start, end int) {
		for i := start; i < end; i++ {
			ys[i], valid[i] = sample(f, xs[i])
		}
	})

	t := newSortedMap[float64]()
	for i, x := range xs {
		if valid[i] {
			t.put(x, ys[i])
		}
	}
	return t
}

// PopulateOneD samples f on [min, max) with the given transformed-space step.
// Samples for which f fails are left out.
func PopulateOneD(f Func, min, max float64, mode StepMode, step float64, clamp bool) *OneD {
	return newOneD(populate(f, steps(min, max, mode, step)), step, mode, clamp)
}

// Grid describes a two-dimensional sampling grid. Count is the number of
// samples along an axis, endpoints included.
type Grid struct {
	XStart, XEnd float64
	YStart, YEnd float64
	XCount       int
	YCount       int
	XMode, YMode StepMode
	Clamp        bool
}

func (g Grid) validate() error {
	if g.XCount < 2 || g.YCount < 2 {
		return fmt.Errorf("%w: grid needs at least 2 samples per axis", ErrDefinition)
	}
	return nil
}

// axis returns count coordinates evenly spaced in the transformed space, and
// the transformed spacing.
func axis(start, end float64, count int, mode StepMode) ([]float64, float64) {
	lo, hi := mode.Forward(start), mode.Forward(end)
	pts := floats.Span(make([]float64, count), lo, hi)
	for i := range pts {
		pts[i] = mode.Inverse(pts[i])
	}
	return pts, (hi - lo) / float64(count-1)
}

// PopulateTwoD samples f over g. Points for which f fails are omitted, leaving
// a sparse result; rows that end up empty are dropped.
func PopulateTwoD(f Func2, g Grid) (*TwoD, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	xs, xStep := axis(g.XStart, g.XEnd, g.XCount, g.XMode)
	ys, yStep := axis(g.YStart, g.YEnd, g.YCount, g.YMode)

	rows := make([]*sortedMap[float64], len(xs))
	parallelFor(len(xs), 1, func(start, end int) {
		for i := start; i < end; i++ {
			x := xs[i]
			row := newSortedMap[float64]()
			for _, y := range ys {
				if v, ok := sample(func(y float64) (float64, error) { return f(x, y) }, y); ok {
					row.put(y, v)
				}
			}
			rows[i] = row
		}
	})

	out := newTwoD(xStep, yStep, g.XMode, g.YMode, g.Clamp)
	for i, row := range rows {
		if row.len() > 0 {
			out.rows.put(xs[i], newOneD(row, yStep, g.YMode, g.Clamp))
		}
	}
	return out, nil
}
