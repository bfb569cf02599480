package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a guarded status update matched no row,
	// i.e. the entity left the expected state under a concurrent decision
	ErrConflict = errors.New("conflict: entity not in expected state")

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errors.New("duplicate entity")

	// ErrExhausted is returned when a guarded counter decrement finds the
	// counter already at zero
	ErrExhausted = errors.New("no remaining capacity")

	// ErrOverlap is returned when a guarded transition is refused because
	// the actor already holds a window overlapping the requested one
	ErrOverlap = errors.New("overlapping window")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
