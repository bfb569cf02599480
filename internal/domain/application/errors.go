package application

import "errors"

var (
	// ErrApplicationNotFound indicates no application exists.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyActive indicates the applicant already holds an
	// application that is not UNSUCCESSFUL.
	ErrAlreadyActive = errors.New("applicant already has an active application")
	// ErrIneligible indicates the applicant's demographics do not allow
	// the requested flat type.
	ErrIneligible = errors.New("applicant not eligible for flat type")
	// ErrInvalidFlatType indicates the flat type is not one the project offers.
	ErrInvalidFlatType = errors.New("flat type not offered by project")
	// ErrConflictOfInterest indicates an officer applying to a project
	// they are approved to handle.
	ErrConflictOfInterest = errors.New("officer handles this project")
	// ErrInvalidState indicates the operation requires a different status.
	ErrInvalidState = errors.New("application not in required state")
	// ErrAlreadyBooked indicates a second booking attempt.
	ErrAlreadyBooked = errors.New("application already booked")
	// ErrNoUnits indicates approval found the flat-type inventory empty;
	// the application has been auto-set UNSUCCESSFUL.
	ErrNoUnits = errors.New("no units remaining for flat type")
)
