package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/limfang/btoflow/internal/domain/eligibility"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/repository"
)

// Service runs the application state machine: submit, manager decision,
// officer booking, and withdrawal. A unit is reserved at approval time;
// booking finalizes status and emits the receipt without touching
// inventory again.
type Service struct {
	apps     Repository
	projects ProjectRepository
	regs     RegistrationChecker
	people   PersonGetter
	logger   *slog.Logger
}

// NewService creates a new application service.
func NewService(apps Repository, projects ProjectRepository, regs RegistrationChecker, people PersonGetter, logger *slog.Logger) *Service {
	return &Service{
		apps:     apps,
		projects: projects,
		regs:     regs,
		people:   people,
		logger:   logger,
	}
}

// Submit creates a PENDING application for the acting applicant.
// Inventory is not checked at submission time; exhaustion surfaces at
// approval.
func (s *Service) Submit(ctx context.Context, applicant identity.Person, projectID string, flatType project.FlatType) (*Application, error) {
	if !applicant.CanApply() {
		return nil, identity.ErrCannotApply
	}

	active, err := s.apps.GetActiveByApplicant(ctx, applicant.NRIC)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active application: %w", err)
	}
	if active != nil {
		return nil, ErrAlreadyActive
	}

	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if !proj.HasFlatType(flatType) {
		return nil, ErrInvalidFlatType
	}
	if !eligibility.CanRequestFlatType(applicant.MaritalStatus, applicant.Age, string(flatType)) {
		return nil, ErrIneligible
	}

	if applicant.Role == identity.RoleOfficer {
		handling, err := s.regs.HasApprovedRegistration(ctx, applicant.NRIC, projectID)
		if err != nil {
			return nil, fmt.Errorf("checking registrations: %w", err)
		}
		if handling {
			return nil, ErrConflictOfInterest
		}
	}

	now := time.Now()
	app := &Application{
		ID:            uuid.NewString(),
		ApplicantNRIC: applicant.NRIC,
		ProjectID:     projectID,
		FlatType:      flatType,
		Status:        StatusPending,
		CreatedAt:     now,
		ModifiedAt:    now,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		// The store enforces at most one active application per
		// applicant; a racing submission loses here.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyActive
		}
		return nil, fmt.Errorf("creating application: %w", err)
	}

	return app, nil
}

// Approve decides a PENDING application. The status flip and the unit
// reservation commit in one transaction; if the inventory is already
// empty the application is committed UNSUCCESSFUL and ErrNoUnits
// returned, and SUCCESSFUL is never observable in between.
func (s *Service) Approve(ctx context.Context, manager identity.Person, appID string) (*Application, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}

	app, err := s.get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.apps.ApproveReserving(ctx, appID); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrInvalidState
		case errors.Is(err, repository.ErrExhausted):
			app.Status = StatusUnsuccessful
			return app, ErrNoUnits
		case errors.Is(err, repository.ErrNotFound):
			// The application was just loaded, so the project side of
			// the reservation is what went missing.
			return nil, project.ErrProjectNotFound
		default:
			return nil, fmt.Errorf("approving application: %w", err)
		}
	}

	app.Status = StatusSuccessful
	return app, nil
}

// Reject decides a PENDING application as UNSUCCESSFUL. No unit was
// reserved, so inventory is untouched.
func (s *Service) Reject(ctx context.Context, manager identity.Person, appID string) (*Application, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}

	app, err := s.get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.apps.UpdateStatus(ctx, appID, StatusPending, StatusUnsuccessful); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("rejecting application: %w", err)
	}

	app.Status = StatusUnsuccessful
	return app, nil
}

// Book finalizes a SUCCESSFUL application and emits the booking receipt.
// The unit was reserved at approval; booking is a status flip.
func (s *Service) Book(ctx context.Context, officer identity.Person, appID string) (*Receipt, error) {
	if officer.Role != identity.RoleOfficer {
		return nil, identity.ErrNotOfficer
	}

	app, err := s.get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.Status == StatusBooked {
		return nil, ErrAlreadyBooked
	}
	if app.Status != StatusSuccessful {
		return nil, ErrInvalidState
	}

	if err := s.apps.UpdateStatus(ctx, appID, StatusSuccessful, StatusBooked); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Raced with another decision; report what the row became.
			if current, gerr := s.get(ctx, appID); gerr == nil && current.Status == StatusBooked {
				return nil, ErrAlreadyBooked
			}
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("booking application: %w", err)
	}

	applicant, err := s.people.Get(ctx, app.ApplicantNRIC)
	if err != nil {
		return nil, fmt.Errorf("loading applicant for receipt: %w", err)
	}
	proj, err := s.projects.Get(ctx, app.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading project for receipt: %w", err)
	}

	return &Receipt{
		ApplicantNRIC: applicant.NRIC,
		ApplicantAge:  applicant.Age,
		MaritalStatus: applicant.MaritalStatus,
		FlatType:      app.FlatType,
		Project:       *proj,
		Status:        StatusBooked,
		OfficerNRIC:   officer.NRIC,
		IssuedAt:      time.Now(),
	}, nil
}

// Withdraw forces the applicant's current application UNSUCCESSFUL,
// whatever its status. No unit is returned to inventory; units are
// never restocked.
func (s *Service) Withdraw(ctx context.Context, applicant identity.Person) (*Application, error) {
	app, err := s.apps.GetLatestByApplicant(ctx, applicant.NRIC)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("loading application: %w", err)
	}

	if err := s.apps.ForceStatus(ctx, app.ID, StatusUnsuccessful); err != nil {
		return nil, fmt.Errorf("withdrawing application: %w", err)
	}

	app.Status = StatusUnsuccessful
	return app, nil
}

// Get returns an application by id.
func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	return s.get(ctx, id)
}

// CurrentFor returns the applicant's most recent application, if any.
func (s *Service) CurrentFor(ctx context.Context, nric string) (*Application, error) {
	app, err := s.apps.GetLatestByApplicant(ctx, nric)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("loading application: %w", err)
	}
	return app, nil
}

// ListByProject returns a project's applications (manager review queue).
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Application, error) {
	return s.apps.ListByProject(ctx, projectID)
}

func (s *Service) get(ctx context.Context, id string) (*Application, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	return app, nil
}
