package solver

import "math"

const (
	defaultMaxIterations = 10000
	defaultTolerance     = 1e-6
	minLearningRate      = 1e-6
	growth               = 1.05
	decay                = 0.9
)

type descentConfig struct {
	tolerance     float64
	maxIterations int
}

// DescentOption tunes GradientDescent.
type DescentOption func(*descentConfig)

// WithTolerance sets the derivative magnitude below which the search stops.
func WithTolerance(tol float64) DescentOption {
	return func(c *descentConfig) { c.tolerance = tol }
}

// WithMaxIterations caps the number of iterations.
func WithMaxIterations(n int) DescentOption {
	return func(c *descentConfig) { c.maxIterations = n }
}

// GradientDescent searches for a local minimum of f starting at start.
//
// The derivative is estimated by central differences of width dx. An improving
// step grows the learning rate by 5%, a rejected one shrinks it by 10%; the
// search returns the last accepted point when the rate falls below 1e-6 or the
// derivative falls below the tolerance. Hitting the iteration cap returns NaN
// and ErrNoConvergence.
func GradientDescent(f func(float64) float64, start, step, dx float64, opts ...DescentOption) (float64, error) {
	cfg := descentConfig{
		tolerance:     defaultTolerance,
		maxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	x := start
	rate := step

	for i := 0; i < cfg.maxIterations; i++ {
		derivative := (f(x+dx) - f(x-dx)) / (2 * dx)
		next := x - rate*derivative

		if f(next) < f(x) {
			x = next
			rate *= growth
		} else {
			rate *= decay
			if rate < minLearningRate {
				return x, nil
			}
		}

		if math.Abs(derivative) < cfg.tolerance {
			return x, nil
		}
	}

	return math.NaN(), &Error{Op: "gradient descent", A: start, B: x, FA: f(start), FB: f(x), Wrapped: ErrNoConvergence}
}
