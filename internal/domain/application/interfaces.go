package application

import (
	"context"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
)

// Repository provides persistence for applications.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	// GetActiveByApplicant returns the applicant's non-UNSUCCESSFUL
	// application, if any.
	GetActiveByApplicant(ctx context.Context, nric string) (*Application, error)
	// GetLatestByApplicant returns the applicant's most recent
	// application regardless of status.
	GetLatestByApplicant(ctx context.Context, nric string) (*Application, error)
	// UpdateStatus transitions id from exactly `from` to `to`; it returns
	// repository.ErrConflict when the application is no longer in `from`.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	// ApproveReserving transitions id from PENDING to SUCCESSFUL and
	// reserves one unit of the applied flat type, atomically. When the
	// flat type is exhausted the application is committed UNSUCCESSFUL
	// instead and repository.ErrExhausted returned; a racing decision
	// surfaces as repository.ErrConflict.
	ApproveReserving(ctx context.Context, id string) error
	// ForceStatus sets the status unconditionally (withdrawal).
	ForceStatus(ctx context.Context, id string, to Status) error
	ListByProject(ctx context.Context, projectID string) ([]Application, error)
	List(ctx context.Context) ([]Application, error)
}

// ProjectRepository provides the project reads the workflow needs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// RegistrationChecker answers the conflict-of-interest question without
// importing the registration package.
type RegistrationChecker interface {
	HasApprovedRegistration(ctx context.Context, officerNRIC, projectID string) (bool, error)
}

// PersonGetter resolves an NRIC to a person for receipt emission.
type PersonGetter interface {
	Get(ctx context.Context, nric string) (*identity.Person, error)
}
