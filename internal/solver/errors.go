package solver

import (
	"errors"
	"fmt"
)

// Failure classes shared by the solvers and their callers.
var (
	// ErrInvalidBracket indicates f(a) and f(b) do not have opposite signs.
	ErrInvalidBracket = errors.New("solver: invalid bracket (no sign change)")

	// ErrNaNInterval indicates the function is NaN on both ends of the interval.
	ErrNaNInterval = errors.New("solver: function is NaN across the interval")

	// ErrNoConvergence indicates an iterative method hit its iteration cap.
	ErrNoConvergence = errors.New("solver: no convergence")

	// ErrDomain indicates an argument outside the valid domain.
	ErrDomain = errors.New("solver: argument outside valid domain")
)

// Error wraps a failure class with the operation and offending values.
type Error struct {
	Op      string
	A, B    float64
	FA, FB  float64
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [a=%g f(a)=%g | b=%g f(b)=%g]: %v", e.Op, e.A, e.FA, e.B, e.FB, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
