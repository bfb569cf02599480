package registration

import "errors"

var (
	// ErrRegistrationNotFound indicates the registration doesn't exist.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrDuplicate indicates the officer already registered for the project.
	ErrDuplicate = errors.New("officer already registered for project")
	// ErrScheduleConflict indicates an overlap with a project the officer
	// is already approved to handle.
	ErrScheduleConflict = errors.New("officer already handles a project in this period")
	// ErrConflictOfInterest indicates the officer holds an active
	// application for the same project.
	ErrConflictOfInterest = errors.New("officer is an applicant for this project")
	// ErrInvalidState indicates the registration is not PENDING.
	ErrInvalidState = errors.New("registration not in required state")
	// ErrNoSlot indicates approval found no officer slots left; the
	// registration has been auto-set REJECTED.
	ErrNoSlot = errors.New("no officer slots remaining")
)
