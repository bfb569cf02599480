package enquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/repository"
)

// Repository provides persistence for enquiries.
type Repository interface {
	Create(ctx context.Context, e *Enquiry) error
	Get(ctx context.Context, id string) (*Enquiry, error)
	Update(ctx context.Context, e *Enquiry) error
	Delete(ctx context.Context, id string) error
	ListByApplicant(ctx context.Context, nric string) ([]Enquiry, error)
	ListByProject(ctx context.Context, projectID string) ([]Enquiry, error)
}

// Service handles the applicant Q&A thread: submit, author edits and
// deletes, and staff replies.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new enquiry service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit records a new enquiry by the acting applicant.
func (s *Service) Submit(ctx context.Context, applicant identity.Person, projectID, text string) (*Enquiry, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(projectID) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	e := &Enquiry{
		ID:            uuid.NewString(),
		ApplicantNRIC: applicant.NRIC,
		ProjectID:     projectID,
		Text:          text,
		CreatedAt:     now,
		ModifiedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating enquiry: %w", err)
	}
	return e, nil
}

// Edit replaces the question text. Only the author may edit, and only
// while no reply has been recorded.
func (s *Service) Edit(ctx context.Context, applicant identity.Person, id, text string) (*Enquiry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.ApplicantNRIC != applicant.NRIC {
		return nil, ErrNotAuthor
	}
	if e.Answered() {
		return nil, ErrAlreadyReplied
	}

	e.Text = text
	e.ModifiedAt = time.Now()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("updating enquiry: %w", err)
	}
	return e, nil
}

// Delete removes the enquiry. Only the author may delete.
func (s *Service) Delete(ctx context.Context, applicant identity.Person, id string) error {
	e, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if e.ApplicantNRIC != applicant.NRIC {
		return ErrNotAuthor
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting enquiry: %w", err)
	}
	return nil
}

// Reply records a single staff answer.
func (s *Service) Reply(ctx context.Context, staff identity.Person, id, text string) (*Enquiry, error) {
	if staff.Role != identity.RoleOfficer && staff.Role != identity.RoleManager {
		return nil, ErrNotStaff
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Answered() {
		return nil, ErrAlreadyReplied
	}

	now := time.Now()
	e.Reply = text
	e.RepliedBy = staff.NRIC
	e.RepliedAt = &now
	e.ModifiedAt = now
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("replying to enquiry: %w", err)
	}
	return e, nil
}

// ListByApplicant returns an applicant's own enquiries.
func (s *Service) ListByApplicant(ctx context.Context, nric string) ([]Enquiry, error) {
	return s.repo.ListByApplicant(ctx, nric)
}

// ListByProject returns a project's enquiries (staff view).
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Enquiry, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) get(ctx context.Context, id string) (*Enquiry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("getting enquiry: %w", err)
	}
	return e, nil
}
