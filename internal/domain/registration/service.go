package registration

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

// Service runs the registration state machine: officer submission and
// manager decision, with officer-slot consumption on approval.
type Service struct {
	regs     Repository
	projects ProjectRepository
	apps     ApplicationChecker
	logger   *slog.Logger
}

// NewService creates a new registration service.
func NewService(regs Repository, projects ProjectRepository, apps ApplicationChecker, logger *slog.Logger) *Service {
	return &Service{
		regs:     regs,
		projects: projects,
		apps:     apps,
		logger:   logger,
	}
}

// Register creates a PENDING registration for the acting officer.
func (s *Service) Register(ctx context.Context, officer identity.Person, projectID string) (*Registration, error) {
	if !officer.CanHandleProjects() {
		return nil, identity.ErrNotOfficer
	}

	target, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOfficerConflicts(ctx, officer.NRIC, target); err != nil {
		return nil, err
	}

	active, err := s.apps.HasActiveApplication(ctx, officer.NRIC, projectID)
	if err != nil {
		return nil, fmt.Errorf("checking applications: %w", err)
	}
	if active {
		return nil, ErrConflictOfInterest
	}

	now := time.Now()
	reg := &Registration{
		ID:          uuid.NewString(),
		OfficerNRIC: officer.NRIC,
		ProjectID:   projectID,
		Status:      StatusPending,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if err := s.regs.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("creating registration: %w", err)
	}

	return reg, nil
}

// Approve decides a PENDING registration. The status flip, the
// schedule-overlap re-check, and the officer-slot consumption commit in
// one transaction, so two pending registrations for overlapping windows
// can never both end up APPROVED. On an empty slot pool the
// registration is committed REJECTED and ErrNoSlot returned.
func (s *Service) Approve(ctx context.Context, manager identity.Person, regID string) (*Registration, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}

	reg, err := s.get(ctx, regID)
	if err != nil {
		return nil, err
	}
	if reg.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.regs.ApproveConsumingSlot(ctx, regID); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrInvalidState
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrScheduleConflict
		case errors.Is(err, repository.ErrExhausted):
			reg.Status = StatusRejected
			return reg, ErrNoSlot
		case errors.Is(err, repository.ErrNotFound):
			// The registration was just loaded, so the project it
			// points at is what went missing.
			return nil, project.ErrProjectNotFound
		default:
			return nil, fmt.Errorf("approving registration: %w", err)
		}
	}

	reg.Status = StatusApproved
	return reg, nil
}

// Reject decides a PENDING registration as REJECTED. No resource change.
func (s *Service) Reject(ctx context.Context, manager identity.Person, regID string) (*Registration, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}

	reg, err := s.get(ctx, regID)
	if err != nil {
		return nil, err
	}
	if reg.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.regs.UpdateStatus(ctx, regID, StatusPending, StatusRejected); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("rejecting registration: %w", err)
	}

	reg.Status = StatusRejected
	return reg, nil
}

// Get returns a registration by id.
func (s *Service) Get(ctx context.Context, id string) (*Registration, error) {
	return s.get(ctx, id)
}

// ListByOfficer returns an officer's registrations.
func (s *Service) ListByOfficer(ctx context.Context, officerNRIC string) ([]Registration, error) {
	return s.regs.ListByOfficer(ctx, officerNRIC)
}

// ListByProject returns a project's registrations (manager review queue).
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Registration, error) {
	return s.regs.ListByProject(ctx, projectID)
}

// checkOfficerConflicts enforces the submission-time rules: no second
// registration for the same project, no overlap with an APPROVED one.
func (s *Service) checkOfficerConflicts(ctx context.Context, officerNRIC string, target *project.Project) error {
	existing, err := s.regs.ListByOfficer(ctx, officerNRIC)
	if err != nil {
		return fmt.Errorf("listing registrations: %w", err)
	}
	for _, r := range existing {
		if r.ProjectID == target.ID {
			return ErrDuplicate
		}
	}
	return s.overlapError(ctx, existing, target)
}

func (s *Service) overlapError(ctx context.Context, regs []Registration, target *project.Project) error {
	for _, r := range regs {
		if r.Status != StatusApproved {
			continue
		}
		held, err := s.projects.Get(ctx, r.ProjectID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Dangling reference to a deleted project; treat the
				// registration as invalid rather than blocking.
				continue
			}
			return fmt.Errorf("loading held project: %w", err)
		}
		if eligibility.Overlaps(held.OpenDate, held.CloseDate, target.OpenDate, target.CloseDate) {
			return ErrScheduleConflict
		}
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Registration, error) {
	reg, err := s.regs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("getting registration: %w", err)
	}
	return reg, nil
}

func (s *Service) getProject(ctx context.Context, id string) (*project.Project, error) {
	proj, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return proj, nil
}
