package table

import "math"

// OneD is a one-dimensional tabulated function x -> y.
type OneD struct {
	table *sortedMap[float64]
	step  float64
	mode  StepMode
	clamp bool
}

// NewOneD builds a table from samples. step is the sample spacing in the
// mode's transformed space; a non-positive step disables the grid fast path.
func NewOneD(samples map[float64]float64, step float64, mode StepMode, clamp bool) *OneD {
	t := newSortedMap[float64]()
	for x, y := range samples {
		t.put(x, y)
	}
	return newOneD(t, step, mode, clamp)
}

func newOneD(t *sortedMap[float64], step float64, mode StepMode, clamp bool) *OneD {
	return &OneD{table: t, step: step, mode: mode, clamp: clamp}
}

func (f *OneD) Len() int       { return f.table.len() }
func (f *OneD) Step() float64  { return f.step }
func (f *OneD) Mode() StepMode { return f.mode }
func (f *OneD) Clamped() bool  { return f.clamp }

// Bounds returns the first and last sample coordinates.
func (f *OneD) Bounds() (lo, hi float64, ok bool) {
	first, ok1 := f.table.first()
	last, ok2 := f.table.last()
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return first.key, last.key, true
}

// Samples returns the table contents in ascending key order.
func (f *OneD) Samples() (xs, ys []float64) {
	entries := f.table.entries()
	xs = make([]float64, len(entries))
	ys = make([]float64, len(entries))
	for i, e := range entries {
		xs[i], ys[i] = e.key, e.val
	}
	return xs, ys
}

// Evaluate interpolates the table at x. Outside the sampled range it returns
// the boundary sample when clamped, and extrapolates from the two boundary
// samples otherwise.
func (f *OneD) Evaluate(x float64) (float64, error) {
	first, ok := f.table.first()
	if !ok {
		return math.NaN(), ErrEmpty
	}
	last, _ := f.table.last()

	if x <= first.key {
		if f.clamp {
			return first.val, nil
		}
		return f.extrapolateBelow(x, first), nil
	}
	if x >= last.key {
		if f.clamp {
			return last.val, nil
		}
		return f.extrapolateAbove(x, last), nil
	}

	return f.interpolate(x), nil
}

func (f *OneD) interpolate(x float64) float64 {
	if x1, x2, frac, ok := gridBracket(x, f.step, f.mode); ok {
		y1, ok1 := f.table.get(x1)
		y2, ok2 := f.table.get(x2)
		if ok1 && ok2 {
			return lerp(y1, y2, frac)
		}
	}

	// computed grid keys missing: search the neighbours instead
	lower, okL := f.table.floor(x)
	upper, okU := f.table.ceiling(x)
	if !okL || !okU {
		first, _ := f.table.first()
		return first.val
	}
	if lower.key == upper.key {
		return lower.val
	}
	return lerp(lower.val, upper.val, (x-lower.key)/(upper.key-lower.key))
}

func (f *OneD) extrapolateBelow(x float64, lower entry[float64]) float64 {
	upper, ok := f.table.higher(lower.key)
	if !ok {
		return lower.val
	}
	return linear(x, lower, upper)
}

func (f *OneD) extrapolateAbove(x float64, upper entry[float64]) float64 {
	lower, ok := f.table.lower(upper.key)
	if !ok {
		return upper.val
	}
	return linear(x, lower, upper)
}

// gridBracket locates the grid keys around x assuming samples sit on integer
// multiples of step in transformed space.
func gridBracket(x, step float64, mode StepMode) (x1, x2, frac float64, ok bool) {
	if step <= 0 {
		return 0, 0, 0, false
	}
	index := mode.Forward(x) / step
	if math.IsNaN(index) || math.IsInf(index, 0) {
		return 0, 0, 0, false
	}
	lowerIndex := math.Floor(index)
	frac = index - lowerIndex
	x1 = mode.Inverse(lowerIndex * step)
	x2 = mode.Inverse((lowerIndex + 1) * step)
	return x1, x2, frac, true
}

func linear(x float64, a, b entry[float64]) float64 {
	t := (x - a.key) / (b.key - a.key)
	return lerp(a.val, b.val, t)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
