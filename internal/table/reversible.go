package table

import (
	"fmt"
	"math"
)

// Reversible holds a forward table and a resampled inverse table for cheap
// approximate inversion. The two are not exact inverses; the inverse error is
// bounded by the resampling step.
type Reversible struct {
	f       *OneD
	inverse *OneD
}

// NewReversible samples f over [min, max) with the given step and mode, then
// resamples the result onto a grid regular in inverseMode's transformed value
// space. Both tables clamp at their boundaries.
func NewReversible(f Func, min, max float64, mode StepMode, step float64, inverseMode StepMode, inverseStep float64) (*Reversible, error) {
	forward := populate(f, steps(min, max, mode, step))
	if forward.len() < 2 {
		return nil, fmt.Errorf("%w: %d forward samples on [%g, %g)", ErrEmpty, forward.len(), min, max)
	}

	inverted, err := invert(forward.entries(), inverseMode, inverseStep)
	if err != nil {
		return nil, err
	}

	return &Reversible{
		f:       newOneD(forward, step, mode, true),
		inverse: newOneD(inverted, inverseStep, inverseMode, true),
	}, nil
}

// invert builds y -> x by walking a regular grid of transformed y values and
// interpolating x between the forward samples that straddle each grid value.
func invert(entries []entry[float64], mode StepMode, step float64) (*sortedMap[float64], error) {
	start := mode.Forward(entries[0].val)
	end := mode.Forward(entries[len(entries)-1].val)
	lo, hi := math.Min(start, end), math.Max(start, end)
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || step <= 0 {
		return nil, fmt.Errorf("%w: cannot invert values in [%g, %g]", ErrDefinition, entries[0].val, entries[len(entries)-1].val)
	}

	n := int((hi - lo) / step)
	inverted := newSortedMap[float64]()

	for i := 0; i < n; i++ {
		target := lo + float64(i)*step

		for j := 0; j < len(entries)-1; j++ {
			y1 := mode.Forward(entries[j].val)
			y2 := mode.Forward(entries[j+1].val)
			if y1 == y2 || target < math.Min(y1, y2) || target > math.Max(y1, y2) {
				continue
			}
			t := (target - y1) / (y2 - y1)
			x := entries[j].key + t*(entries[j+1].key-entries[j].key)
			inverted.put(mode.Inverse(target), x)
			break
		}
	}

	if inverted.len() == 0 {
		return nil, fmt.Errorf("%w: inverse table is empty", ErrEmpty)
	}
	return inverted, nil
}

// F evaluates the forward table.
func (r *Reversible) F(x float64) (float64, error) {
	return r.f.Evaluate(x)
}

// InverseF evaluates the inverse table.
func (r *Reversible) InverseF(y float64) (float64, error) {
	return r.inverse.Evaluate(y)
}

// Forward exposes the forward table.
func (r *Reversible) Forward() *OneD { return r.f }

// Inverse exposes the inverse table.
func (r *Reversible) Inverse() *OneD { return r.inverse }
