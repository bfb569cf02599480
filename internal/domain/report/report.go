// Package report provides the read-only booking aggregation consumed by
// the reporting collaborator. It never formats or prints.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
)

// BookingRow is one booked flat in the report.
type BookingRow struct {
	NRIC          string                 `json:"nric"`
	Age           int                    `json:"age"`
	MaritalStatus identity.MaritalStatus `json:"marital_status"`
	ProjectName   string                 `json:"project_name"`
	FlatType      project.FlatType       `json:"flat_type"`
}

// Filter narrows the report. A nil MaritalStatus means all statuses.
type Filter struct {
	MaritalStatus *identity.MaritalStatus
}

// Repository provides the joined booking rows.
type Repository interface {
	ListBooked(ctx context.Context, filter Filter) ([]BookingRow, error)
}

// Service answers booking report queries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new report service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BookedFlats returns one row per BOOKED application, optionally
// filtered by marital status.
func (s *Service) BookedFlats(ctx context.Context, filter Filter) ([]BookingRow, error) {
	rows, err := s.repo.ListBooked(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing booked flats: %w", err)
	}
	return rows, nil
}
