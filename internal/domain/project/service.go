package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/limfang/btoflow/internal/domain/eligibility"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/repository"
)

// Service owns the project registry: creation, edits, deletion,
// visibility, and the eligibility-filtered listings applicants see.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Spec carries the full field set of a project. Create inserts it;
// Edit replaces the stored fields with it wholesale (no partial patch).
type Spec struct {
	Name         string
	Neighborhood string
	Slots        [2]FlatSlot
	OpenDate     time.Time
	CloseDate    time.Time
	OfficerSlots int
}

// Create inserts a new visible project owned by the acting manager.
// Fails if the manager already owns a project with an overlapping window.
func (s *Service) Create(ctx context.Context, manager identity.Person, req Spec) (*Project, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}
	if err := ValidateSpec(req); err != nil {
		return nil, err
	}
	if err := s.checkManagerWindow(ctx, manager.NRIC, req, ""); err != nil {
		return nil, err
	}

	proj := &Project{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Neighborhood: req.Neighborhood,
		ManagerNRIC:  manager.NRIC,
		Slots:        req.Slots,
		OpenDate:     req.OpenDate,
		CloseDate:    req.CloseDate,
		OfficerSlots: req.OfficerSlots,
		Visible:      true,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Edit replaces the project's fields. Only the owning manager may edit,
// and the id stays stable across the replacement.
func (s *Service) Edit(ctx context.Context, manager identity.Person, id string, req Spec) (*Project, error) {
	if manager.Role != identity.RoleManager {
		return nil, identity.ErrNotManager
	}
	if err := ValidateSpec(req); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ManagerNRIC != manager.NRIC {
		return nil, ErrNotOwner
	}
	if err := s.checkManagerWindow(ctx, manager.NRIC, req, id); err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = req.Name
	updated.Neighborhood = req.Neighborhood
	updated.Slots = req.Slots
	updated.OpenDate = req.OpenDate
	updated.CloseDate = req.CloseDate
	updated.OfficerSlots = req.OfficerSlots

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return &updated, nil
}

// Delete removes a project from the registry. Deletion is refused while
// any non-terminal application or registration still references it, so
// live workflows can never dangle.
func (s *Service) Delete(ctx context.Context, manager identity.Person, id string) error {
	if manager.Role != identity.RoleManager {
		return identity.ErrNotManager
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.ManagerNRIC != manager.NRIC {
		return ErrNotOwner
	}

	live, err := s.repo.LiveReferenceCount(ctx, id)
	if err != nil {
		return fmt.Errorf("counting live references: %w", err)
	}
	if live > 0 {
		return ErrProjectInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}

// ToggleVisibility flips the visible flag. In-flight applications and
// registrations are unaffected; visibility gates discovery only.
func (s *Service) ToggleVisibility(ctx context.Context, manager identity.Person, id string) (bool, error) {
	if manager.Role != identity.RoleManager {
		return false, identity.ErrNotManager
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if current.ManagerNRIC != manager.NRIC {
		return false, ErrNotOwner
	}

	visible, err := s.repo.ToggleVisibility(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrProjectNotFound
		}
		return false, fmt.Errorf("toggling visibility: %w", err)
	}

	return visible, nil
}

// Get fetches a project by id.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// GetByName fetches a project by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (*Project, error) {
	proj, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project by name: %w", err)
	}
	return proj, nil
}

// List returns all project summaries (staff view, visibility ignored).
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// ListByManager returns the projects a manager owns.
func (s *Service) ListByManager(ctx context.Context, managerNRIC string) ([]Project, error) {
	return s.repo.ListByManager(ctx, managerNRIC)
}

// ListFilter narrows applicant-facing listings.
type ListFilter struct {
	Neighborhood string
	FlatType     FlatType
}

// ListVisibleTo returns the projects an applicant may discover, applying
// the visibility flag, the demographic gate, and optional filters.
func (s *Service) ListVisibleTo(ctx context.Context, applicant identity.Person, filter ListFilter) ([]Summary, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	visible := make([]Summary, 0, len(all))
	for _, p := range all {
		if !eligibility.VisibleTo(applicant.MaritalStatus, applicant.Age, p.Visible, p.Slots[0].Units) {
			continue
		}
		if filter.Neighborhood != "" && !strings.EqualFold(p.Neighborhood, filter.Neighborhood) {
			continue
		}
		if filter.FlatType != "" && !slotWithUnits(p.Slots, filter.FlatType) {
			continue
		}
		visible = append(visible, p)
	}
	return visible, nil
}

func (s *Service) checkManagerWindow(ctx context.Context, managerNRIC string, req Spec, excludeID string) error {
	owned, err := s.repo.ListByManager(ctx, managerNRIC)
	if err != nil {
		return fmt.Errorf("listing manager projects: %w", err)
	}
	windows := make([]eligibility.Window, 0, len(owned))
	for _, p := range owned {
		if p.ID == excludeID {
			continue
		}
		windows = append(windows, eligibility.Window{Open: p.OpenDate, Close: p.CloseDate})
	}
	if eligibility.AnyOverlap(windows, req.OpenDate, req.CloseDate) {
		return ErrScheduleConflict
	}
	return nil
}

func slotWithUnits(slots [2]FlatSlot, ft FlatType) bool {
	for _, s := range slots {
		if s.Type == ft && s.Units != 0 {
			return true
		}
	}
	return false
}
