package table

import "errors"

var (
	// ErrEmpty indicates a lookup on a table without samples.
	ErrEmpty = errors.New("table: function table is empty")

	// ErrDefinition indicates a malformed persisted table definition.
	ErrDefinition = errors.New("table: invalid table definition")

	// ErrNotFound indicates a library lookup for an unknown table name.
	ErrNotFound = errors.New("table: no such table")
)
