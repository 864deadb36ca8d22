// Package solver provides the one-dimensional numerical building blocks used by
// the property engine:
//
//   - [Dichotomy]: bracketed bisection with NaN recovery
//   - [GradientDescent]: adaptive-step local minimiser
//   - [SolveCubic]: closed-form real roots of a cubic polynomial
//
// Failures are reported as errors wrapping one of [ErrInvalidBracket],
// [ErrNaNInterval], [ErrNoConvergence] or [ErrDomain]. Dichotomy additionally
// logs its failures and returns the sentinel value 0 alongside the error; a
// tolerance that is not positive is an [ErrDomain].
package solver
