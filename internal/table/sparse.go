package table

import "math"

// Sparse is a two-dimensional table over irregular keys. Every lookup uses
// floor/ceiling search on both axes; rows may cover different y ranges.
type Sparse struct {
	rows  *sortedMap[*OneD]
	clamp bool
}

// NewSparse builds a sparse table from x -> (y -> z) samples.
func NewSparse(samples map[float64]map[float64]float64, clamp bool) *Sparse {
	s := &Sparse{rows: newSortedMap[*OneD](), clamp: clamp}
	for x, row := range samples {
		if len(row) == 0 {
			continue
		}
		s.rows.put(x, NewOneD(row, 0, Linear, clamp))
	}
	return s
}

// Rows returns the number of populated x rows.
func (s *Sparse) Rows() int { return s.rows.len() }

// Evaluate interpolates at (x, y).
func (s *Sparse) Evaluate(x, y float64) (float64, error) {
	if s.rows.len() == 0 {
		return math.NaN(), ErrEmpty
	}
	return evaluateRows(s.rows, x, y, s.clamp)
}
