package registration

import (
	"context"

	"github.com/limfang/btoflow/internal/domain/project"
)

// Repository provides persistence for registrations.
type Repository interface {
	Create(ctx context.Context, reg *Registration) error
	Get(ctx context.Context, id string) (*Registration, error)
	ListByOfficer(ctx context.Context, officerNRIC string) ([]Registration, error)
	ListByProject(ctx context.Context, projectID string) ([]Registration, error)
	// UpdateStatus transitions id from exactly `from` to `to`;
	// repository.ErrConflict when the row left `from`.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	// ApproveConsumingSlot transitions id from PENDING to APPROVED and
	// consumes one of the project's officer slots, atomically. It
	// returns repository.ErrOverlap when the officer already holds an
	// APPROVED registration with an overlapping window, and on an empty
	// slot pool commits the row REJECTED and returns
	// repository.ErrExhausted. Slots never go negative.
	ApproveConsumingSlot(ctx context.Context, id string) error
}

// ProjectRepository provides the project reads the workflow needs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ApplicationChecker answers the applicant-conflict question without
// importing the application package.
type ApplicationChecker interface {
	HasActiveApplication(ctx context.Context, nric, projectID string) (bool, error)
}
