package identity

import "errors"

var (
	// ErrPersonNotFound indicates no person exists for the given NRIC.
	ErrPersonNotFound = errors.New("person not found")
	// ErrInvalidNRIC indicates a malformed NRIC.
	ErrInvalidNRIC = errors.New("invalid NRIC")
	// ErrInvalidInput indicates invalid person input.
	ErrInvalidInput = errors.New("invalid person input")
	// ErrDuplicateNRIC indicates a person already exists for the NRIC.
	ErrDuplicateNRIC = errors.New("person already exists for NRIC")

	// ErrNotManager indicates a manager-only operation was attempted by
	// someone without the manager role.
	ErrNotManager = errors.New("acting person is not a manager")
	// ErrNotOfficer indicates an officer-only operation was attempted by
	// someone without the officer role.
	ErrNotOfficer = errors.New("acting person is not an officer")
	// ErrCannotApply indicates the acting person may not submit applications.
	ErrCannotApply = errors.New("acting person cannot apply for flats")
)
