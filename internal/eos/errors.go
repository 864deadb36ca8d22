package eos

import (
	"errors"
	"fmt"
)

// Failure classes for property queries.
var (
	// ErrInvalidParams indicates non-positive critical constants or molar mass.
	ErrInvalidParams = errors.New("eos: invalid fluid parameters")

	// ErrDomain indicates a temperature or pressure outside the model's domain,
	// including saturation queries at or above the critical point.
	ErrDomain = errors.New("eos: state outside valid domain")

	// ErrNoRoot indicates no admissible compressibility factor exists.
	ErrNoRoot = errors.New("eos: no admissible compressibility root")

	// ErrNoSaturation indicates the saturation solver found no coexistence state.
	ErrNoSaturation = errors.New("eos: no saturation state found")

	// ErrUnphysical indicates a property evaluated to NaN for the queried state.
	ErrUnphysical = errors.New("eos: property undefined for queried state")
)

// StateError wraps a failure class with the state that caused it.
type StateError struct {
	Op      string
	T       float64
	P       float64
	Wrapped error
}

func (e *StateError) Error() string {
	if e.P == 0 {
		return fmt.Sprintf("%s at T=%g K: %v", e.Op, e.T, e.Wrapped)
	}
	return fmt.Sprintf("%s at T=%g K, P=%g Pa: %v", e.Op, e.T, e.P, e.Wrapped)
}

func (e *StateError) Unwrap() error {
	return e.Wrapped
}

func stateErr(op string, T, P float64, err error) error {
	return &StateError{Op: op, T: T, P: P, Wrapped: err}
}
