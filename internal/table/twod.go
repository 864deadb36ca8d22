package table

import "math"

// TwoD is a dense two-dimensional tabulated function (x, y) -> z built on a
// grid that is regular in each axis's transformed space.
type TwoD struct {
	rows  *sortedMap[*OneD]
	xStep float64
	yStep float64
	xMode StepMode
	yMode StepMode
	clamp bool
}

func newTwoD(xStep, yStep float64, xMode, yMode StepMode, clamp bool) *TwoD {
	return &TwoD{
		rows:  newSortedMap[*OneD](),
		xStep: xStep,
		yStep: yStep,
		xMode: xMode,
		yMode: yMode,
		clamp: clamp,
	}
}

// NewTwoD builds a dense table from x -> (y -> z) samples.
func NewTwoD(samples map[float64]map[float64]float64, xStep, yStep float64, xMode, yMode StepMode, clamp bool) *TwoD {
	t := newTwoD(xStep, yStep, xMode, yMode, clamp)
	for x, row := range samples {
		if len(row) == 0 {
			continue
		}
		t.rows.put(x, NewOneD(row, yStep, yMode, clamp))
	}
	return t
}

// Rows returns the number of populated x rows.
func (t *TwoD) Rows() int { return t.rows.len() }

// Evaluate interpolates at (x, y): each bracketing row is interpolated along y,
// then the two results are blended along x.
func (t *TwoD) Evaluate(x, y float64) (float64, error) {
	if t.rows.len() == 0 {
		return math.NaN(), ErrEmpty
	}

	if x1, x2, frac, ok := gridBracket(x, t.xStep, t.xMode); ok {
		row1, ok1 := t.rows.get(x1)
		row2, ok2 := t.rows.get(x2)
		if ok1 && ok2 {
			return blendRows(row1, row2, y, frac)
		}
	}

	return evaluateRows(t.rows, x, y, t.clamp)
}

// evaluateRows handles lookups by neighbour search along x, used by both the
// dense fallback and the sparse table.
func evaluateRows(rows *sortedMap[*OneD], x, y float64, clamp bool) (float64, error) {
	first, ok := rows.first()
	if !ok {
		return math.NaN(), ErrEmpty
	}
	last, _ := rows.last()

	switch {
	case x < first.key:
		if clamp {
			return first.val.Evaluate(y)
		}
		next, ok := rows.higher(first.key)
		if !ok {
			return first.val.Evaluate(y)
		}
		return extrapolateRows(first, next, x, y)
	case x > last.key:
		if clamp {
			return last.val.Evaluate(y)
		}
		prev, ok := rows.lower(last.key)
		if !ok {
			return last.val.Evaluate(y)
		}
		return extrapolateRows(prev, last, x, y)
	}

	lower, _ := rows.floor(x)
	upper, _ := rows.ceiling(x)
	if lower.key == upper.key {
		return lower.val.Evaluate(y)
	}
	return blendRows(lower.val, upper.val, y, (x-lower.key)/(upper.key-lower.key))
}

func blendRows(row1, row2 *OneD, y, frac float64) (float64, error) {
	v1, err := row1.Evaluate(y)
	if err != nil {
		return math.NaN(), err
	}
	v2, err := row2.Evaluate(y)
	if err != nil {
		return math.NaN(), err
	}
	return lerp(v1, v2, frac), nil
}

func extrapolateRows(a, b entry[*OneD], x, y float64) (float64, error) {
	return blendRows(a.val, b.val, y, (x-a.key)/(b.key-a.key))
}
