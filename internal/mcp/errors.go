package mcp

import (
	"errors"
	"fmt"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/domain/registration"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unrecognized errors
// return nil and pass through unchanged.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, identity.ErrPersonNotFound):
		return &APIError{Code: "PERSON_NOT_FOUND", Message: "person not found", RecoveryHint: "Check the NRIC"}
	case errors.Is(err, identity.ErrNotManager):
		return &APIError{Code: "NOT_MANAGER", Message: "operation requires a manager"}
	case errors.Is(err, identity.ErrNotOfficer):
		return &APIError{Code: "NOT_OFFICER", Message: "operation requires an officer"}
	case errors.Is(err, identity.ErrCannotApply):
		return &APIError{Code: "CANNOT_APPLY", Message: "managers cannot apply for flats"}
	case errors.Is(err, identity.ErrInvalidNRIC):
		return &APIError{Code: "INVALID_NRIC", Message: "invalid NRIC format", RecoveryHint: "Use S or T, 7 digits, then a letter"}
	case errors.Is(err, identity.ErrDuplicateNRIC):
		return &APIError{Code: "DUPLICATE_NRIC", Message: "a person with this NRIC already exists"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, project.ErrDuplicateName):
		return &APIError{Code: "DUPLICATE_PROJECT_NAME", Message: "a project with this name already exists"}
	case errors.Is(err, project.ErrScheduleConflict):
		return &APIError{Code: "SCHEDULE_CONFLICT", Message: "application window overlaps another project of this manager"}
	case errors.Is(err, project.ErrNotOwner):
		return &APIError{Code: "NOT_OWNER", Message: "project belongs to another manager"}
	case errors.Is(err, project.ErrProjectInUse):
		return &APIError{Code: "PROJECT_IN_USE", Message: "project has live applications or registrations", RecoveryHint: "Resolve them before deleting"}
	case errors.Is(err, project.ErrInvalidFlatType):
		return &APIError{Code: "INVALID_FLAT_TYPE", Message: "flat type must be 2-Room or 3-Room"}
	case errors.Is(err, application.ErrApplicationNotFound):
		return &APIError{Code: "APPLICATION_NOT_FOUND", Message: "application not found"}
	case errors.Is(err, application.ErrAlreadyActive):
		return &APIError{Code: "ALREADY_ACTIVE", Message: "applicant already has an active application", RecoveryHint: "Withdraw it first"}
	case errors.Is(err, application.ErrIneligible):
		return &APIError{Code: "INELIGIBLE", Message: "applicant does not qualify for this flat type"}
	case errors.Is(err, application.ErrInvalidFlatType):
		return &APIError{Code: "FLAT_TYPE_NOT_OFFERED", Message: "project does not offer this flat type"}
	case errors.Is(err, application.ErrConflictOfInterest):
		return &APIError{Code: "CONFLICT_OF_INTEREST", Message: "officers cannot apply to a project they handle"}
	case errors.Is(err, application.ErrInvalidState):
		return &APIError{Code: "INVALID_STATE", Message: "application is not in the required state"}
	case errors.Is(err, application.ErrAlreadyBooked):
		return &APIError{Code: "ALREADY_BOOKED", Message: "application is already booked"}
	case errors.Is(err, application.ErrNoUnits):
		return &APIError{Code: "NO_UNITS", Message: "no units left for this flat type", RecoveryHint: "The application has been marked unsuccessful"}
	case errors.Is(err, registration.ErrRegistrationNotFound):
		return &APIError{Code: "REGISTRATION_NOT_FOUND", Message: "registration not found"}
	case errors.Is(err, registration.ErrDuplicate):
		return &APIError{Code: "DUPLICATE_REGISTRATION", Message: "officer already registered for this project"}
	case errors.Is(err, registration.ErrScheduleConflict):
		return &APIError{Code: "REGISTRATION_OVERLAP", Message: "officer already handles a project with an overlapping window"}
	case errors.Is(err, registration.ErrConflictOfInterest):
		return &APIError{Code: "CONFLICT_OF_INTEREST", Message: "officers cannot handle a project they applied to"}
	case errors.Is(err, registration.ErrInvalidState):
		return &APIError{Code: "INVALID_STATE", Message: "registration is not in the required state"}
	case errors.Is(err, registration.ErrNoSlot):
		return &APIError{Code: "NO_OFFICER_SLOTS", Message: "no officer slots left", RecoveryHint: "The registration has been rejected"}
	case errors.Is(err, enquiry.ErrEnquiryNotFound):
		return &APIError{Code: "ENQUIRY_NOT_FOUND", Message: "enquiry not found"}
	case errors.Is(err, enquiry.ErrNotAuthor):
		return &APIError{Code: "NOT_AUTHOR", Message: "only the author may modify an enquiry"}
	case errors.Is(err, enquiry.ErrAlreadyReplied):
		return &APIError{Code: "ALREADY_REPLIED", Message: "enquiry has already been answered"}
	case errors.Is(err, enquiry.ErrNotStaff):
		return &APIError{Code: "NOT_STAFF", Message: "replying requires an officer or manager"}
	case errors.Is(err, identity.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, enquiry.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", RecoveryHint: "Check required fields"}
	default:
		return nil
	}
}

// toolError wraps a domain error for the tool response, keeping
// unmapped errors as-is.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
