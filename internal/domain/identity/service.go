package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/limfang/btoflow/internal/repository"
)

// Service handles person records supplied by the bulk loader and the
// authentication collaborator.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new identity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterRequest defines person ingestion inputs.
type RegisterRequest struct {
	NRIC          string
	Name          string
	Age           int
	MaritalStatus MaritalStatus
	Role          Role
}

// Register records a person. Inputs come from the bulk loader and are
// validated here rather than trusted.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Person, error) {
	nric := strings.ToUpper(strings.TrimSpace(req.NRIC))
	if !ValidNRIC(nric) {
		return nil, ErrInvalidNRIC
	}
	if req.Age < 0 || !ValidMaritalStatus(req.MaritalStatus) || !ValidRole(req.Role) {
		return nil, ErrInvalidInput
	}

	p := &Person{
		NRIC:          nric,
		Name:          strings.TrimSpace(req.Name),
		Age:           req.Age,
		MaritalStatus: req.MaritalStatus,
		Role:          req.Role,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateNRIC
		}
		return nil, fmt.Errorf("registering person: %w", err)
	}

	return p, nil
}

// Get fetches a person by NRIC.
func (s *Service) Get(ctx context.Context, nric string) (*Person, error) {
	p, err := s.repo.Get(ctx, strings.ToUpper(strings.TrimSpace(nric)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("getting person: %w", err)
	}
	return p, nil
}

// List returns people, optionally filtered by role (empty role means all).
func (s *Service) List(ctx context.Context, role Role) ([]Person, error) {
	return s.repo.List(ctx, role)
}
