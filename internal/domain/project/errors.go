package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrInvalidFlatType indicates a flat-type label outside 2-Room/3-Room.
	ErrInvalidFlatType = errors.New("invalid flat type label")
	// ErrDuplicateName indicates another project already carries the name.
	ErrDuplicateName = errors.New("project name already in use")
	// ErrScheduleConflict indicates the manager already owns a project with
	// an overlapping application window.
	ErrScheduleConflict = errors.New("manager already handles a project in this period")
	// ErrNotOwner indicates a mutation attempted by a manager who does not
	// own the project.
	ErrNotOwner = errors.New("project is owned by another manager")
	// ErrProjectInUse indicates live applications or registrations still
	// reference the project, so deletion is refused.
	ErrProjectInUse = errors.New("project has live applications or registrations")
)
