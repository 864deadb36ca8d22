package process

import "errors"

var (
	// ErrInvalidArgument indicates a non-positive pressure ratio, a yield
	// outside (0, 1] or a negative amount.
	ErrInvalidArgument = errors.New("process: invalid argument")

	// ErrNoSolution indicates no temperature reproduces the requested
	// property at the given pressure.
	ErrNoSolution = errors.New("process: no state matches target")

	// ErrMissingTable indicates the table library lacks a required table.
	ErrMissingTable = errors.New("process: missing table")
)
